package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sb25/REST-Web-Services-interaction/models"
	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
	"github.com/sb25/REST-Web-Services-interaction/tests/common"
)

func setUp(t *testing.T) (*common.FakeRepository, *ProductService) {
	repo := common.NewFakeRepository(t)
	return repo, NewProductService(targrep.NewClient(repo.Config(t)))
}

func TestFind(t *testing.T) {
	repo, ps := setUp(t)
	ctx := context.Background()

	found, err := ps.Find(ctx, "EPD00064_1_A01")
	assert.NoError(t, err)
	assert.Nil(t, found)

	id := repo.AddProduct(map[string]interface{}{"escell_clone": "EPD00064_1_A01", "allele_id": 3})
	found, err = ps.Find(ctx, "EPD00064_1_A01")
	require.NoError(t, err)
	assert.Equal(t, &models.Product{Id: id, EscellClone: "EPD00064_1_A01", AlleleId: 3}, found)
}

func TestResolveAmbiguousProductDoesNotCreate(t *testing.T) {
	repo, ps := setUp(t)
	repo.AddProduct(map[string]interface{}{"escell_clone": "EPD00064_1_A01", "allele_id": 1})
	repo.AddProduct(map[string]interface{}{"escell_clone": "EPD00064_1_A01", "allele_id": 2})

	product, created, err := ps.Resolve(context.Background(), &models.Allele{Id: 1}, "EPD00064_1_A01")
	assert.Nil(t, product)
	assert.False(t, created)

	var ame *e.AmbiguousMatchError
	require.ErrorAs(t, err, &ame)
	assert.Equal(t, "product", ame.Resource)
	assert.Equal(t, 2, ame.Count)
	assert.Empty(t, repo.CallsTo("POST", "products.json"))
}

func TestResolveCreatesUnderParentAllele(t *testing.T) {
	repo, ps := setUp(t)
	ctx := context.Background()
	parent := &models.Allele{Id: 99}

	product, created, err := ps.Resolve(ctx, parent, "EPD00064_1_A03")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 99, product.AlleleId)

	calls := repo.CallsTo("POST", "products.json")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]interface{}{
		"product": map[string]interface{}{
			"escell_clone": "EPD00064_1_A03",
			"allele_id":    float64(99),
		},
	}, calls[0].Body)

	again, created, err := ps.Resolve(ctx, parent, "EPD00064_1_A03")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, product.Id, again.Id)
	assert.Len(t, repo.CallsTo("POST", "products.json"), 1)
}

func TestCreateRequiresResolvedAllele(t *testing.T) {
	repo, ps := setUp(t)
	ctx := context.Background()

	for _, parent := range []*models.Allele{nil, {}} {
		product, err := ps.Create(ctx, parent, "EPD00064_1_A04")
		assert.Nil(t, product)
		assert.ErrorIs(t, err, e.ErrUnresolvedAllele)
	}
	assert.Empty(t, repo.Calls())
}
