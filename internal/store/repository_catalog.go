package store

import (
	"context"

	"github.com/rs/zerolog/log"
)

func (s *Store) CreateItem(ctx context.Context, name, rarity, image string, value int64) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO items (id, name, rarity, image, value) VALUES ($1,$2,$3,$4,$5)`,
		id, name, rarity, image, value)
	return id, err
}

func (s *Store) GetItem(ctx context.Context, id string) (*Item, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, name, rarity, image, value, created_at FROM items WHERE id = $1`, id)
	var it Item
	if err := row.Scan(&it.ID, &it.Name, &it.Rarity, &it.Image, &it.Value, &it.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &it, nil
}

func (s *Store) ListItems(ctx context.Context, limit, offset int) ([]Item, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, name, rarity, image, value, created_at FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Rarity, &it.Image, &it.Value, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) CreateCase(ctx context.Context, title string, price int64, cover string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO cases (id, title, price, cover) VALUES ($1,$2,$3,$4)`,
		id, title, price, cover)
	return id, err
}

func (s *Store) GetCase(ctx context.Context, id string) (*Case, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, title, price, cover, created_at FROM cases WHERE id = $1`, id)
	var c Case
	if err := row.Scan(&c.ID, &c.Title, &c.Price, &c.Cover, &c.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (s *Store) ListCases(ctx context.Context) ([]Case, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, title, price, cover, created_at FROM cases ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Case{}
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.Title, &c.Price, &c.Cover, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddCaseItem links an item into a case's draw distribution. Non-positive
// weights are stored as 1.
func (s *Store) AddCaseItem(ctx context.Context, caseID, itemID string, weight int64) (string, error) {
	if weight <= 0 {
		weight = 1
	}
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO case_items (id, case_id, item_id, weight) VALUES ($1,$2,$3,$4)`,
		id, caseID, itemID, weight)
	return id, err
}

func (s *Store) ListCaseDrops(ctx context.Context, caseID string) ([]CaseDrop, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT it.id, it.name, it.rarity, it.image, it.value, it.created_at, ci.weight
		FROM case_items ci
		JOIN items it ON it.id = ci.item_id
		WHERE ci.case_id = $1
	`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CaseDrop{}
	for rows.Next() {
		var d CaseDrop
		if err := rows.Scan(&d.Item.ID, &d.Item.Name, &d.Item.Rarity, &d.Item.Image, &d.Item.Value, &d.Item.CreatedAt, &d.Weight); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) CountCases(ctx context.Context) (int, error) {
	row := s.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM cases`)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

// EnsureDemoCatalog seeds one case with five weighted items when the
// catalog is empty. No-op otherwise.
func (s *Store) EnsureDemoCatalog(ctx context.Context) error {
	c, err := s.CountCases(ctx)
	if err != nil {
		return err
	}
	if c > 0 {
		return nil
	}
	type seedItem struct {
		name   string
		rarity string
		value  int64
		weight int64
	}
	seeds := []seedItem{
		{"Desert Eagle | Purple", "rare", 1500, 30},
		{"AK-47 | Redline", "epic", 6000, 12},
		{"Knife | Gold", "legendary", 25000, 1},
		{"Sticker | Common", "common", 200, 40},
		{"USP | Blue", "uncommon", 700, 25},
	}
	caseID, err := s.CreateCase(ctx, "Armory Case", 3000, "")
	if err != nil {
		return err
	}
	for _, it := range seeds {
		itemID, err := s.CreateItem(ctx, it.name, it.rarity, "", it.value)
		if err != nil {
			return err
		}
		if _, err := s.AddCaseItem(ctx, caseID, itemID, it.weight); err != nil {
			return err
		}
	}
	log.Info().Str("case_id", caseID).Msg("seeded demo catalog")
	return nil
}
