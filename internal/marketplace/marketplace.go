// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package marketplace provisions new marketplaces. Creating one allocates its
// ident and writes the records a marketplace needs to be usable: the
// marketplace row, its customization, a default category, a default
// listing shape with its transaction process, and the initial plan.
package marketplace

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"marketkit/internal/ident"
	"marketkit/internal/listingshape"
	"marketkit/internal/models"
)

// Defaults applied to missing CreateParams fields.
const (
	DefaultLanguage = "en"
	DefaultName     = "Trial Marketplace"
	DefaultCountry  = "us"
	DefaultType     = TypeProduct

	// Consent is recorded on every new marketplace.
	Consent = "SHARETRIBE1.0"

	// IdentMaxLength caps the slug part of a marketplace ident.
	IdentMaxLength = 30
	// IdentFallback is used when the name slugifies to nothing.
	IdentFallback = "trial_site"

	// DefaultCategoryName is the name of the category every marketplace
	// starts with.
	DefaultCategoryName = "Default"

	// planValidity is how long the initial plan lasts.
	planValidity = 31 * 24 * time.Hour
)

// Marketplace types.
const (
	TypeProduct = "product"
	TypeRental  = "rental"
	TypeService = "service"
)

// ReservedDomains are sub-domain words that can never be a marketplace ident.
var ReservedDomains = []string{
	"www", "home", "sharetribe", "login", "blog", "business", "catch",
	"webhooks", "dashboard", "dashboardtranslate", "translate", "community",
	"wiki", "mail", "secure", "host", "feed", "feeds", "app", "beta-site",
	"marketplace", "marketplaces", "masters", "marketplacemasters",
	"insights", "insight", "tips", "doc", "docs", "support", "legal", "org",
	"net", "web", "intra", "intranet", "internal", "webinar", "local",
	"proxy", "preproduction", "staging",
}

var (
	// ErrNotFound is returned when a marketplace does not exist.
	ErrNotFound = errors.New("marketplace not found")

	// ErrInvalidParams wraps validation failures of CreateParams.
	ErrInvalidParams = errors.New("invalid marketplace params")
)

// Store persists marketplaces and the records created with them.
type Store interface {
	Create(ctx context.Context, m *models.Marketplace) (*models.Marketplace, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Marketplace, error)
	IdentExists(ctx context.Context, ident string) (bool, error)
	CreateCustomization(ctx context.Context, c *models.Customization) (*models.Customization, error)
	CreatePlan(ctx context.Context, p *models.Plan) (*models.Plan, error)
}

// CategoryCreator creates categories and links listing shapes to them.
type CategoryCreator interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	AttachShape(ctx context.Context, categoryID, shapeID uuid.UUID) error
}

// ProcessCreator creates transaction processes.
type ProcessCreator interface {
	Create(ctx context.Context, p *models.TransactionProcess) (*models.TransactionProcess, error)
}

// ShapeCreator creates listing shapes. listingshape.Service implements it.
type ShapeCreator interface {
	Create(ctx context.Context, marketplaceID uuid.UUID, in listingshape.NewShape) (*models.ListingShape, error)
}

// TranslationWriter stores marketplace translations.
type TranslationWriter interface {
	Upsert(ctx context.Context, translations []models.Translation) error
}

// Messages renders default texts of the message catalog.
type Messages interface {
	T(locale, id string, data map[string]any) string
}

// CreateParams is the input of Create. Every field is optional. A nil
// MarketplaceName means DefaultName; an empty one is kept as is and leaves
// the ident to the fallback.
type CreateParams struct {
	MarketplaceName     *string `json:"marketplace_name" validate:"omitnil,max=255"`
	MarketplaceLanguage string  `json:"marketplace_language" validate:"omitempty,bcp47_language_tag"`
	MarketplaceCountry  string  `json:"marketplace_country" validate:"omitempty,len=2,alpha"`
	MarketplaceType     string  `json:"marketplace_type" validate:"omitempty,max=64"`
	PlanLevel           *int    `json:"plan_level" validate:"omitnil,min=0"`
}

// View is a marketplace as returned to API clients. The locales of the
// settings document are lifted to the top level.
type View struct {
	ID                  uuid.UUID `json:"id"`
	Ident               string    `json:"ident"`
	URL                 string    `json:"url"`
	Locales             []string  `json:"locales"`
	Consent             string    `json:"consent"`
	AvailableCurrencies string    `json:"available_currencies"`
	Country             *string   `json:"country,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Config holds the settings of a Service.
type Config struct {
	// Scheme and Domain build marketplace URLs: "{scheme}://{ident}.{domain}".
	Scheme string
	Domain string
	// MaxAttempts bounds ident allocation; zero uses ident.DefaultMaxAttempts.
	MaxAttempts int
}

// Service provisions and reads marketplaces.
type Service struct {
	store        Store
	categories   CategoryCreator
	processes    ProcessCreator
	shapes       ShapeCreator
	translations TranslationWriter
	messages     Messages
	idents       *ident.Allocator
	validate     *validator.Validate
	cfg          Config

	// now is replaced in tests.
	now func() time.Time
}

// NewService returns a Service wired to its collaborators.
func NewService(store Store, categories CategoryCreator, processes ProcessCreator, shapes ShapeCreator,
	translations TranslationWriter, messages Messages, cfg Config) *Service {
	return &Service{
		store:        store,
		categories:   categories,
		processes:    processes,
		shapes:       shapes,
		translations: translations,
		messages:     messages,
		idents:       IdentAllocator(cfg.MaxAttempts),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		cfg:          cfg,
		now:          time.Now,
	}
}

// IdentAllocator returns the allocator for marketplace idents.
func IdentAllocator(maxAttempts int) *ident.Allocator {
	return &ident.Allocator{
		Reserved:    ident.NewReserved(ReservedDomains...),
		MaxLength:   IdentMaxLength,
		Fallback:    IdentFallback,
		MaxAttempts: maxAttempts,
	}
}

// Create provisions a marketplace. The records are written one after the
// other; a failure part way leaves the ones already written in place.
func (s *Service) Create(ctx context.Context, p CreateParams) (*View, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	locale := cmp.Or(p.MarketplaceLanguage, DefaultLanguage)
	name := DefaultName
	if p.MarketplaceName != nil {
		name = *p.MarketplaceName
	}
	kind := cmp.Or(p.MarketplaceType, DefaultType)

	identValue, err := s.idents.Allocate(ctx, name, s.store.IdentExists)
	if err != nil {
		return nil, fmt.Errorf("allocate ident: %w", err)
	}

	var country *string
	if p.MarketplaceCountry != "" {
		c := strings.ToUpper(p.MarketplaceCountry)
		country = &c
	}

	m, err := s.store.Create(ctx, &models.Marketplace{
		Ident:               identValue,
		Consent:             Consent,
		Settings:            models.MarketplaceSettings{Locales: []string{locale}},
		AvailableCurrencies: CurrencyFor(cmp.Or(p.MarketplaceCountry, DefaultCountry)),
		Country:             country,
	})
	if err != nil {
		return nil, fmt.Errorf("create marketplace: %w", err)
	}

	if _, err := s.store.CreateCustomization(ctx, &models.Customization{
		MarketplaceID:       m.ID,
		Name:                name,
		Locale:              locale,
		HowToUsePageContent: s.howToUseContent(locale, name),
	}); err != nil {
		return nil, fmt.Errorf("create customization: %w", err)
	}

	category, err := s.categories.Create(ctx, &models.Category{
		MarketplaceID: m.ID,
		URL:           strings.ToLower(DefaultCategoryName),
		Translations:  []models.CategoryTranslation{{Locale: locale, Name: DefaultCategoryName}},
	})
	if err != nil {
		return nil, fmt.Errorf("create default category: %w", err)
	}

	shape, err := s.createDefaultShape(ctx, m.ID, locale, kind)
	if err != nil {
		return nil, err
	}
	if err := s.categories.AttachShape(ctx, category.ID, shape.ID); err != nil {
		return nil, fmt.Errorf("attach default listing shape: %w", err)
	}

	planLevel := models.PlanLevelFree
	if p.PlanLevel != nil {
		planLevel = *p.PlanLevel
	}
	if _, err := s.store.CreatePlan(ctx, &models.Plan{
		MarketplaceID: m.ID,
		PlanLevel:     planLevel,
		ExpiresAt:     PlanExpiry(s.now()),
	}); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	slog.Info("marketplace created",
		"marketplace_id", m.ID,
		"ident", m.Ident,
		"locale", locale,
		"type", kind,
	)
	return s.view(m), nil
}

// Get returns the view of a marketplace, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return s.view(m), nil
}

// ProvisionDemo creates a marketplace with default settings and returns its
// ident. Used to seed development databases.
func (s *Service) ProvisionDemo(ctx context.Context) (string, error) {
	name := "Demo Marketplace"
	v, err := s.Create(ctx, CreateParams{MarketplaceName: &name})
	if err != nil {
		return "", err
	}
	return v.Ident, nil
}

// PlanExpiry returns when an initial plan created at now expires: 09:00 UTC
// on the day of now, plus 31 days.
func PlanExpiry(now time.Time) time.Time {
	y, mo, d := now.UTC().Date()
	return time.Date(y, mo, d, 9, 0, 0, 0, time.UTC).Add(planValidity)
}

func (s *Service) howToUseContent(locale, name string) string {
	title := s.messages.T(locale, "infos.how_to_use.default_title", nil)
	content := s.messages.T(locale, "infos.how_to_use.default_content", map[string]any{"MarketplaceName": name})
	return "<h1>" + title + "</h1><div>" + content + "</div>"
}

func (s *Service) view(m *models.Marketplace) *View {
	locales := m.Settings.Locales
	if locales == nil {
		locales = []string{}
	}
	return &View{
		ID:                  m.ID,
		Ident:               m.Ident,
		URL:                 m.FullDomain(s.cfg.Scheme, s.cfg.Domain),
		Locales:             locales,
		Consent:             m.Consent,
		AvailableCurrencies: m.AvailableCurrencies,
		Country:             m.Country,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
