package prizepool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/validation"
)

// ErrInvalidTable is returned when a prize table fails validation
var ErrInvalidTable = errors.New("invalid prize table")

// TableConfig is the JSON layout of the default prize table
type TableConfig struct {
	Version     string       `json:"version"`
	Description string       `json:"description"`
	Pools       []PoolConfig `json:"pools"`
}

// PoolConfig is the default stock of one category
type PoolConfig struct {
	Type   int            `json:"type"`
	Chance float64        `json:"chance"`
	Prizes []domain.Prize `json:"prizes"`
}

// Table holds the default stock per category, ordered by type
type Table struct {
	pools []PoolConfig
}

// DefaultTable is used when no table file is configured
func DefaultTable() *Table {
	return &Table{pools: []PoolConfig{
		{Type: 0, Chance: 5, Prizes: []domain.Prize{
			{Name: "Steam key", Amount: 1},
			{Name: "Channel VIP for a month", Amount: 1},
		}},
		{Type: 1, Chance: 15, Prizes: []domain.Prize{
			{Name: "Song request", Amount: 3},
			{Name: "Custom emote vote", Amount: 2},
		}},
		{Type: 2, Chance: 40, Prizes: []domain.Prize{
			{Name: "Shoutout", Amount: 5},
			{Name: "Ferret photo", Amount: 10},
		}},
	}}
}

// NewTable validates cfg and builds a Table from it
func NewTable(cfg *TableConfig) (*Table, error) {
	if err := ValidateTable(cfg); err != nil {
		return nil, err
	}
	pools := append([]PoolConfig(nil), cfg.Pools...)
	sort.Slice(pools, func(i, j int) bool { return pools[i].Type < pools[j].Type })
	return &Table{pools: pools}, nil
}

// LoadTable reads a table file. A missing file falls back to DefaultTable.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn(LogMsgDefaultTableUsed, "path", path)
		return DefaultTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prize table: %w", err)
	}

	if err := validation.Validate(validation.SchemaPrizePool, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, path, err)
	}

	var cfg TableConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prize table: %w", err)
	}
	return NewTable(&cfg)
}

// ValidateTable checks types are unique and non-negative, chances lie in
// (0, 100] and every pool starts with stock
func ValidateTable(cfg *TableConfig) error {
	if cfg == nil || len(cfg.Pools) == 0 {
		return fmt.Errorf("%w: no pools defined", ErrInvalidTable)
	}

	seen := make(map[int]bool, len(cfg.Pools))
	for _, p := range cfg.Pools {
		if p.Type < 0 {
			return fmt.Errorf("%w: negative type %d", ErrInvalidTable, p.Type)
		}
		if seen[p.Type] {
			return fmt.Errorf("%w: duplicate type %d", ErrInvalidTable, p.Type)
		}
		seen[p.Type] = true

		if p.Chance <= 0 || p.Chance > MaxChance {
			return fmt.Errorf("%w: type %d chance %.2f out of range", ErrInvalidTable, p.Type, p.Chance)
		}
		if len(p.Prizes) == 0 {
			return fmt.Errorf("%w: type %d has no prizes", ErrInvalidTable, p.Type)
		}
		for _, prize := range p.Prizes {
			if strings.TrimSpace(prize.Name) == "" || prize.Amount <= 0 {
				return fmt.Errorf("%w: type %d has invalid prize %q x%d", ErrInvalidTable, p.Type, prize.Name, prize.Amount)
			}
		}
	}
	return nil
}

// Types returns the configured category ordinals in ascending order
func (t *Table) Types() []int {
	types := make([]int, len(t.pools))
	for i, p := range t.pools {
		types[i] = p.Type
	}
	return types
}

// Fresh returns a new category for the type with default stock and chance
func (t *Table) Fresh(poolType int) (*domain.PrizePool, bool) {
	for _, p := range t.pools {
		if p.Type == poolType {
			return &domain.PrizePool{
				Type:          p.Type,
				Chance:        p.Chance,
				CurrentChance: p.Chance,
				Prizes:        append([]domain.Prize(nil), p.Prizes...),
			}, true
		}
	}
	return nil, false
}
