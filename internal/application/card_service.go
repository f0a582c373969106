package application

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/oksasatya/bg-companion-api/internal/infrastructure/blizzard"
)

// CardCatalog fetches raw card listings from the external catalog.
type CardCatalog interface {
	FetchCards(ctx context.Context, q blizzard.CardQuery) (json.RawMessage, error)
}

type CardService struct {
	Catalog CardCatalog
}

func NewCardService(catalog CardCatalog) *CardService {
	return &CardService{Catalog: catalog}
}

// Minions lists minion cards. tier may be a comma-separated list.
func (s *CardService) Minions(ctx context.Context, tier, minionType string) (json.RawMessage, error) {
	return s.Catalog.FetchCards(ctx, blizzard.CardQuery{
		CardType:   blizzard.CardTypeMinion,
		Tiers:      splitTiers(tier),
		MinionType: minionType,
	})
}

func (s *CardService) Heroes(ctx context.Context) (json.RawMessage, error) {
	return s.Catalog.FetchCards(ctx, blizzard.CardQuery{CardType: blizzard.CardTypeHero})
}

func (s *CardService) Spells(ctx context.Context, tier string) (json.RawMessage, error) {
	return s.Catalog.FetchCards(ctx, blizzard.CardQuery{
		CardType: blizzard.CardTypeSpell,
		Tiers:    splitTiers(tier),
	})
}

func splitTiers(tier string) []string {
	var out []string
	for _, t := range strings.Split(tier, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
