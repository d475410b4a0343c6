package products

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sb25/REST-Web-Services-interaction/models"
	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
)

const (
	productsPath = "products.json"
	productRoot  = "product"
)

type (
	ProductService struct {
		client *targrep.Client
	}
)

func NewProductService(client *targrep.Client) *ProductService {
	return &ProductService{
		client: client,
	}
}

func (ps *ProductService) Find(ctx context.Context, escellClone string) (*models.Product, error) {
	params := url.Values{}
	params.Set("escell_clone", escellClone)

	match, err := ps.client.FindUnique(ctx, productsPath, params, productRoot, escellClone)
	if err != nil || match == nil {
		return nil, err
	}

	var found models.Product
	if err := ps.client.DecodeRecord(http.MethodGet, productsPath, match, productRoot, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// Create attaches a new product to an allele that already has an id.
func (ps *ProductService) Create(ctx context.Context, parent *models.Allele, escellClone string) (*models.Product, error) {
	if parent == nil || parent.Id == 0 {
		return nil, fmt.Errorf("creating product %s: %w", escellClone, e.ErrUnresolvedAllele)
	}

	payload := map[string]interface{}{
		productRoot: models.Product{
			EscellClone: escellClone,
			AlleleId:    parent.Id,
		},
	}

	response, err := ps.client.Post(ctx, productsPath, payload)
	if err != nil {
		return nil, err
	}

	var created models.Product
	if err := ps.client.DecodeRecord(http.MethodPost, productsPath, response, productRoot, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Resolve finds the product by escell clone or creates it under parent.
// The bool reports a create.
func (ps *ProductService) Resolve(ctx context.Context, parent *models.Allele, escellClone string) (*models.Product, bool, error) {
	found, err := ps.Find(ctx, escellClone)
	if err != nil {
		return nil, false, err
	}
	if found != nil {
		slog.Debug("product already in repository", "id", found.Id, "escellClone", escellClone)
		return found, false, nil
	}

	created, err := ps.Create(ctx, parent, escellClone)
	if err != nil {
		return nil, false, err
	}
	slog.Info("created product", "id", created.Id, "escellClone", escellClone, "alleleId", parent.Id)
	return created, true, nil
}
