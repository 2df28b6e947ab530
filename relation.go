package orm

import (
	"context"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// Relation loading. Relations are declared at the call site with accessor
// functions rather than struct tags: the loader collects the parents'
// keys, fetches all children in one IN query, and assigns them back.

// LoadHasMany attaches all C rows whose foreign key matches each parent.
func LoadHasMany[P, C any, K comparable](
	ctx context.Context,
	session *Session,
	parents []*P,
	parentKey func(*P) K,
	foreignKey clause.Columnar,
	childKey func(*C) K,
	assign func(parent *P, children []C),
) error {
	grouped, err := loadChildren(ctx, session, parents, parentKey, foreignKey, childKey)
	if err != nil {
		return err
	}
	for _, p := range parents {
		assign(p, grouped[parentKey(p)])
	}
	return nil
}

// LoadHasOne attaches at most one C row per parent. With multiple
// candidates the first row returned wins.
func LoadHasOne[P, C any, K comparable](
	ctx context.Context,
	session *Session,
	parents []*P,
	parentKey func(*P) K,
	foreignKey clause.Columnar,
	childKey func(*C) K,
	assign func(parent *P, child *C),
) error {
	grouped, err := loadChildren(ctx, session, parents, parentKey, foreignKey, childKey)
	if err != nil {
		return err
	}
	for _, p := range parents {
		if children := grouped[parentKey(p)]; len(children) > 0 {
			assign(p, &children[0])
		}
	}
	return nil
}

func loadChildren[P, C any, K comparable](
	ctx context.Context,
	session *Session,
	parents []*P,
	parentKey func(*P) K,
	foreignKey clause.Columnar,
	childKey func(*C) K,
) (map[K][]C, error) {
	if len(parents) == 0 {
		return nil, nil
	}

	seen := make(map[K]struct{}, len(parents))
	keys := make([]any, 0, len(parents))
	for _, p := range parents {
		k := parentKey(p)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	children, err := Query[C](session).
		Where(clause.IN{Column: clause.Column{Name: foreignKey.ColumnName()}, Values: keys}).
		Find(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[K][]C, len(parents))
	for _, c := range children {
		c := c
		k := childKey(&c)
		grouped[k] = append(grouped[k], c)
	}
	return grouped, nil
}
