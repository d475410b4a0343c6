package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/ahmetb/go-linq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sb25/REST-Web-Services-interaction/models"
	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest/structs"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
	allelesService "github.com/sb25/REST-Web-Services-interaction/services/alleles"
	pipelinesService "github.com/sb25/REST-Web-Services-interaction/services/pipelines"
	productsService "github.com/sb25/REST-Web-Services-interaction/services/products"
	"github.com/sb25/REST-Web-Services-interaction/tests/common"
)

func pendingAlleles() []structs.AlleleImportRecord {
	return []structs.AlleleImportRecord{
		{
			Pipeline: "KOMP-CSD",
			Allele: models.Allele{
				IkmcProjectId:           "35507",
				AlleleSymbolSuperscript: "tm1a(EUCOMM)Wtsi",
				MgiAccessionId:          "MGI:44556",
				Assembly:                "NCBIM37",
				Chromosome:              "11",
				Strand:                  "+",
				DesignType:              "KO",
				DesignSubtype:           "Frameshift",
				HomologyArmStart:        10,
				HomologyArmEnd:          10000,
				CassetteStart:           50,
				CassetteEnd:             500,
				LoxpStart:               1000,
				LoxpEnd:                 1500,
				Cassette:                "L1L2_gt2",
				Backbone:                "L3L4_pZero_kan",
				IntermediateVector:      "PCS00041_A",
				TargetingVector:         "PGS00041_A",
			},
			Products: []structs.ProductImportRecord{
				{EscellClone: "EPD00064_1_A01"},
				{EscellClone: "EPD00064_1_A03"},
				{EscellClone: "EPD00064_1_A04"},
				{EscellClone: "EPD00064_1_A05"},
			},
		},
		{
			Pipeline: "EUCOMM",
			Allele: models.Allele{
				IkmcProjectId:           "35507",
				AlleleSymbolSuperscript: "tm1e(EUCOMM)Wtsi",
				MgiAccessionId:          "MGI:44556",
				Assembly:                "NCBIM37",
				Chromosome:              "11",
				Strand:                  "+",
				DesignType:              "KO",
				DesignSubtype:           "Frameshift",
				HomologyArmStart:        10,
				HomologyArmEnd:          10000,
				CassetteStart:           50,
				CassetteEnd:             500,
				Cassette:                "L1L2_gt2",
				Backbone:                "L3L4_pZero_kan",
				IntermediateVector:      "PCS00041_A",
				TargetingVector:         "PGS00041_A",
			},
			Products: []structs.ProductImportRecord{
				{EscellClone: "EPD00064_1_A02"},
			},
		},
	}
}

func staticLoader(records []structs.AlleleImportRecord) AlleleLoader {
	return AlleleLoaderFunc(func(ctx context.Context) ([]structs.AlleleImportRecord, error) {
		return records, nil
	})
}

func setUp(t *testing.T, continueOnError bool) (*common.FakeRepository, *SyncService) {
	repo := common.NewFakeRepository(t)
	repo.AddPipeline(1, "EUCOMM")
	repo.AddPipeline(2, "KOMP-CSD")

	client := targrep.NewClient(repo.Config(t))
	ss := NewSyncService(
		pipelinesService.NewPipelineService(client),
		allelesService.NewAlleleService(client),
		productsService.NewProductService(client),
		continueOnError)

	return repo, ss
}

func TestRunCreatesAllelesThenTheirProducts(t *testing.T) {
	repo, ss := setUp(t, false)

	report, err := ss.Run(context.Background(), staticLoader(pendingAlleles()))
	require.NoError(t, err)

	assert.Equal(t, ingest.Done, report.State)
	assert.Equal(t, 2, report.Records)
	assert.Equal(t, 2, report.AllelesCreated)
	assert.Equal(t, 0, report.AllelesFound)
	assert.Equal(t, 5, report.ProductsCreated)
	assert.Empty(t, report.Failures)

	alleles := repo.Alleles()
	require.Len(t, alleles, 2)
	assert.Equal(t, float64(2), alleles[0]["pipeline_id"])
	assert.Equal(t, float64(1), alleles[1]["pipeline_id"])
	for _, a := range alleles {
		assert.NotContains(t, a, "products")
		assert.NotContains(t, a, "pipeline")
	}

	// every product points at the allele resolved just before it
	alleleIdsByClone := map[string]int{}
	From(repo.Products()).ToMapByT(&alleleIdsByClone,
		func(p map[string]interface{}) string { return p["escell_clone"].(string) },
		func(p map[string]interface{}) int { return int(p["allele_id"].(float64)) })

	tm1aId := alleles[0]["id"].(int)
	tm1eId := alleles[1]["id"].(int)
	assert.Equal(t, map[string]int{
		"EPD00064_1_A01": tm1aId,
		"EPD00064_1_A03": tm1aId,
		"EPD00064_1_A04": tm1aId,
		"EPD00064_1_A05": tm1aId,
		"EPD00064_1_A02": tm1eId,
	}, alleleIdsByClone)

	// an allele is always posted before its products
	var methodsAndPaths []string
	From(repo.Calls()).WhereT(func(c common.Call) bool {
		return c.Method == "POST"
	}).SelectT(func(c common.Call) string {
		return c.Path
	}).ToSlice(&methodsAndPaths)
	assert.Equal(t, []string{
		"alleles.json", "products.json", "products.json", "products.json", "products.json",
		"alleles.json", "products.json",
	}, methodsAndPaths)
}

func TestRunIsIdempotent(t *testing.T) {
	repo, ss := setUp(t, false)
	ctx := context.Background()

	_, err := ss.Run(ctx, staticLoader(pendingAlleles()))
	require.NoError(t, err)
	postsAfterFirstRun := len(repo.CallsTo("POST", "alleles.json")) + len(repo.CallsTo("POST", "products.json"))

	report, err := ss.Run(ctx, staticLoader(pendingAlleles()))
	require.NoError(t, err)

	assert.Equal(t, 2, report.AllelesFound)
	assert.Equal(t, 0, report.AllelesCreated)
	assert.Equal(t, 5, report.ProductsFound)
	assert.Equal(t, 0, report.ProductsCreated)
	assert.Equal(t, postsAfterFirstRun, len(repo.CallsTo("POST", "alleles.json"))+len(repo.CallsTo("POST", "products.json")))

	// the pipelines are only fetched once
	assert.Len(t, repo.CallsTo("GET", "pipelines.json"), 1)
}

func TestRunUsesExistingAlleleIdForNewProducts(t *testing.T) {
	repo, ss := setUp(t, false)
	records := pendingAlleles()[:1]

	existingId := repo.AddAllele(map[string]interface{}{
		"ikmc_project_id":           "35507",
		"allele_symbol_superscript": "tm1a(EUCOMM)Wtsi",
		"mgi_accession_id":          "MGI:44556",
	})

	report, err := ss.Run(context.Background(), staticLoader(records))
	require.NoError(t, err)
	assert.Equal(t, 1, report.AllelesFound)
	assert.Empty(t, repo.CallsTo("POST", "alleles.json"))

	for _, p := range repo.Products() {
		assert.Equal(t, float64(existingId), p["allele_id"])
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	repo, ss := setUp(t, false)
	repo.AddProduct(map[string]interface{}{"escell_clone": "EPD00064_1_A01", "allele_id": 50})
	repo.AddProduct(map[string]interface{}{"escell_clone": "EPD00064_1_A01", "allele_id": 51})

	report, err := ss.Run(context.Background(), staticLoader(pendingAlleles()))
	require.Error(t, err)
	assert.True(t, e.IsAmbiguousMatchError(err))

	assert.Equal(t, ingest.Error, report.State)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 0, report.Failures[0].Index)
	assert.Equal(t, "EPD00064_1_A01", report.Failures[0].EscellClone)

	// the allele got created, nothing after the ambiguous product did
	assert.Len(t, repo.CallsTo("POST", "alleles.json"), 1)
	assert.Empty(t, repo.CallsTo("POST", "products.json"))
}

func TestRunContinueOnErrorCollectsFailures(t *testing.T) {
	repo, ss := setUp(t, true)
	records := pendingAlleles()
	records[0].Pipeline = "NorCOMM"

	report, err := ss.Run(context.Background(), staticLoader(records))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUnknownPipeline)

	assert.Equal(t, ingest.Error, report.State)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 0, report.Failures[0].Index)
	assert.Contains(t, report.Failures[0].Message, "NorCOMM")

	assert.Equal(t, 1, report.AllelesCreated)
	assert.Equal(t, 1, report.ProductsCreated)
	assert.Len(t, repo.Alleles(), 1)
	assert.Equal(t, "tm1e(EUCOMM)Wtsi", repo.Alleles()[0]["allele_symbol_superscript"])
}

func TestRunRejectsInvalidRecordsBeforeAnyRequest(t *testing.T) {
	repo, ss := setUp(t, false)
	records := pendingAlleles()
	records[0].MgiAccessionId = "44556"
	records[0].Products = append(records[0].Products, structs.ProductImportRecord{})

	report, err := ss.Run(context.Background(), staticLoader(records))
	assert.ErrorIs(t, err, e.ErrInvalidRecord)
	assert.Equal(t, ingest.Error, report.State)

	assert.Empty(t, repo.CallsTo("GET", "alleles.json"))
	assert.Empty(t, repo.CallsTo("POST", "alleles.json"))
}

func TestRunStopsOnCommunicationError(t *testing.T) {
	repo, ss := setUp(t, false)
	repo.FailWith["POST alleles.json"] = 500

	report, err := ss.Run(context.Background(), staticLoader(pendingAlleles()))
	assert.True(t, e.IsRepositoryCommunicationError(err))
	assert.Equal(t, 0, report.AllelesCreated)
	assert.Len(t, repo.CallsTo("POST", "alleles.json"), 1)
	assert.Empty(t, repo.CallsTo("GET", "products.json"))
}

func TestRunReportsLoaderAndPipelineFailures(t *testing.T) {
	t.Run("loader", func(t *testing.T) {
		_, ss := setUp(t, true)
		loaderErr := errors.New("database unavailable")

		report, err := ss.Run(context.Background(), AlleleLoaderFunc(func(ctx context.Context) ([]structs.AlleleImportRecord, error) {
			return nil, loaderErr
		}))
		assert.ErrorIs(t, err, loaderErr)
		assert.Equal(t, ingest.Error, report.State)
	})

	t.Run("pipelines", func(t *testing.T) {
		repo, ss := setUp(t, false)
		repo.FailWith["GET pipelines.json"] = 502

		loaded := false
		_, err := ss.Run(context.Background(), AlleleLoaderFunc(func(ctx context.Context) ([]structs.AlleleImportRecord, error) {
			loaded = true
			return nil, nil
		}))
		assert.True(t, e.IsRepositoryCommunicationError(err))
		assert.False(t, loaded)
	})
}

func TestRunHonoursCancellation(t *testing.T) {
	repo, ss := setUp(t, false)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	loader := AlleleLoaderFunc(func(ctx context.Context) ([]structs.AlleleImportRecord, error) {
		calls++
		cancel()
		return pendingAlleles(), nil
	})

	report, err := ss.Run(ctx, loader)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, report.AllelesCreated)
	assert.Empty(t, repo.CallsTo("GET", "alleles.json"))
}

func TestRunSourceNamesTheLoader(t *testing.T) {
	_, ss := setUp(t, false)

	report, err := ss.Run(context.Background(), staticLoader(nil))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%T", staticLoader(nil)), report.Source)
	assert.NotEmpty(t, report.Id.String())
}
