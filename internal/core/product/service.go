// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/tienda/internal/platform/validate"
	"github.com/taibuivan/tienda/pkg/pointer"
	"github.com/taibuivan/tienda/pkg/slug"
	"github.com/taibuivan/tienda/pkg/uuid"
)

// Publisher fans catalog events out to connected listeners.
type Publisher interface {
	Broadcast(context context.Context, event string, data any) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates the catalog service. publisher may be nil.
func NewService(repo Repository, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Product, int, error) {
	validator := &validate.Validator{}
	if filter.Sort != "" {
		validator.OneOf(FieldSort, filter.Sort, SortAsc, SortDesc)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) All(context context.Context) ([]*Product, error) {
	return service.repo.All(context)
}

func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.repo.FindByID(context, id)
}

// Exists reports whether a product with id is in the catalog.
func (service *Service) Exists(context context.Context, id string) (bool, error) {
	return service.repo.Exists(context, id)
}

// Create validates and stores a new product, then broadcasts the catalog.
// An empty code defaults to the slug of the title.
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	now := service.now().UTC()
	product := &Product{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Code:        strings.TrimSpace(input.Code),
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    strings.TrimSpace(input.Category),
		Status:      input.Status == nil || *input.Status,
		Thumbnails:  normalizeThumbnails(input.Thumbnails),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Code == "" {
		product.Code = slug.From(product.Title)
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, product); err != nil {
		return nil, err
	}

	service.logger.Info("product_created", slog.String("product_id", product.ID), slog.String("code", product.Code))
	service.publishSnapshot(context)

	return product, nil
}

// Update applies a partial update, then broadcasts the catalog.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	pointer.Apply(&product.Title, input.Title)
	pointer.Apply(&product.Description, input.Description)
	pointer.Apply(&product.Code, input.Code)
	pointer.Apply(&product.Price, input.Price)
	pointer.Apply(&product.Stock, input.Stock)
	pointer.Apply(&product.Category, input.Category)
	pointer.Apply(&product.Status, input.Status)
	if pointer.Apply(&product.Thumbnails, input.Thumbnails) {
		product.Thumbnails = normalizeThumbnails(product.Thumbnails)
	}
	product.Title = strings.TrimSpace(product.Title)
	product.Code = strings.TrimSpace(product.Code)
	product.UpdatedAt = service.now().UTC()

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, product); err != nil {
		return nil, err
	}

	service.logger.Info("product_updated", slog.String("product_id", product.ID))
	service.publishSnapshot(context)

	return product, nil
}

// Delete removes a product and returns it, then broadcasts the catalog.
func (service *Service) Delete(context context.Context, id string) (*Product, error) {
	product, err := service.repo.Delete(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("product_deleted", slog.String("product_id", id))
	service.publishSnapshot(context)

	return product, nil
}

// publishSnapshot broadcasts the full catalog. Failures are logged only.
func (service *Service) publishSnapshot(context context.Context) {
	if service.publisher == nil {
		return
	}

	products, err := service.repo.All(context)
	if err != nil {
		service.logger.Error("product_snapshot_load_failed", slog.Any("error", err))
		return
	}

	if err := service.publisher.Broadcast(context, EventSnapshot, products); err != nil {
		service.logger.Error("product_snapshot_broadcast_failed", slog.Any("error", err))
	}
}

func validateProduct(product *Product) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, product.Title).
		MaxLen(FieldTitle, product.Title, 200).
		Required(FieldCode, product.Code).
		MaxLen(FieldCode, product.Code, 64).
		NonNegative(FieldPrice, product.Price).
		NonNegative(FieldStock, float64(product.Stock)).
		MaxLen(FieldCategory, product.Category, 80)

	return validator.Err()
}

func normalizeThumbnails(thumbnails []string) []string {
	result := make([]string, 0, len(thumbnails))
	for _, thumbnail := range thumbnails {
		if trimmed := strings.TrimSpace(thumbnail); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
