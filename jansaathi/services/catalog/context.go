// jansaathi/services/catalog/context.go
package catalog

import (
	"context"
	"fmt"
	"jansaathi/jansaathi/sources/psql/models"
	"jansaathi/jansaathi/utils/logging"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SchemeStore is the read surface the builder needs from the database.
type SchemeStore interface {
	ListActive(ctx context.Context) ([]models.Scheme, error)
}

const cacheKey = "scheme_context"

// inr groups digits the Indian way (12,34,567) for income amounts.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// Builder serializes the active scheme catalog into the natural-language
// block injected into the system prompt. With ttl == 0 (the default) every
// chat turn rebuilds the block from a fresh query.
type Builder struct {
	store SchemeStore
	ttl   time.Duration
	cache *gocache.Cache
}

func NewBuilder(store SchemeStore, ttl time.Duration) *Builder {
	b := &Builder{store: store, ttl: ttl}
	if ttl > 0 {
		b.cache = gocache.New(ttl, 2*ttl)
	}
	return b
}

// FetchContext returns the formatted catalog, or "" when there are no
// active schemes or the store is unavailable. A store failure only costs
// the assistant its grounding, never the whole chat turn.
func (b *Builder) FetchContext(ctx context.Context) string {
	if b.cache != nil {
		if cached, ok := b.cache.Get(cacheKey); ok {
			return cached.(string)
		}
	}

	schemes, err := b.store.ListActive(ctx)
	if err != nil {
		if logging.ErrorLogger != nil {
			logging.ErrorLogger.Error("scheme catalog fetch failed", zap.Error(err))
		}
		return ""
	}
	if len(schemes) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, s := range schemes {
		sb.WriteString(FormatScheme(i+1, s))
		sb.WriteString("\n")
	}
	block := sb.String()

	if b.cache != nil {
		b.cache.Set(cacheKey, block, gocache.DefaultExpiration)
	}
	return block
}

// Invalidate drops the cached block so the next turn re-reads the store.
func (b *Builder) Invalidate() {
	if b.cache != nil {
		b.cache.Delete(cacheKey)
	}
}

// FormatScheme renders one scheme entry. Only fields actually present make
// it into the eligibility summary.
func FormatScheme(index int, s models.Scheme) string {
	var sb strings.Builder

	name := s.SchemeName
	if s.SchemeNameHindi != "" {
		name = fmt.Sprintf("%s (%s)", s.SchemeName, s.SchemeNameHindi)
	}
	fmt.Fprintf(&sb, "%d. %s\n", index, name)
	fmt.Fprintf(&sb, "   Sector: %s | Level: %s\n", s.Sector, s.Level)

	if elig := eligibilitySummary(s); elig != "" {
		fmt.Fprintf(&sb, "   Eligibility: %s\n", elig)
	}
	fmt.Fprintf(&sb, "   Benefits: %s\n", s.Benefits)
	if len(s.DocumentsRequired) > 0 {
		fmt.Fprintf(&sb, "   Documents: %s\n", strings.Join(s.DocumentsRequired, ", "))
	}
	if len(s.ApplicationSteps) > 0 {
		fmt.Fprintf(&sb, "   How to apply: %s\n", strings.Join(s.ApplicationSteps, " → "))
	}
	if s.OfficialPortal != "" {
		fmt.Fprintf(&sb, "   Portal: %s\n", s.OfficialPortal)
	}
	return sb.String()
}

func eligibilitySummary(s models.Scheme) string {
	var parts []string

	switch {
	case s.MinAge != nil && s.MaxAge != nil:
		parts = append(parts, fmt.Sprintf("Age %d-%d", *s.MinAge, *s.MaxAge))
	case s.MinAge != nil:
		parts = append(parts, fmt.Sprintf("Age %d+", *s.MinAge))
	case s.MaxAge != nil:
		parts = append(parts, fmt.Sprintf("Up to age %d", *s.MaxAge))
	}
	if s.MaxIncome != nil {
		parts = append(parts, inr.Sprintf("Income up to ₹%d/year", *s.MaxIncome))
	}
	if len(s.Occupation) > 0 {
		parts = append(parts, "Occupation: "+strings.Join(s.Occupation, "/"))
	}
	if s.Gender != "" {
		parts = append(parts, "Gender: "+s.Gender)
	}
	if len(s.Category) > 0 {
		parts = append(parts, "Category: "+strings.Join(s.Category, "/"))
	}
	if s.MaxLandholdingHectares != nil {
		parts = append(parts, fmt.Sprintf("Land up to %g hectares", *s.MaxLandholdingHectares))
	}
	if s.DisabilityRequired != nil && *s.DisabilityRequired {
		parts = append(parts, "For persons with disabilities")
	}
	return strings.Join(parts, " | ")
}
