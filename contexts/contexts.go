package contexts

import (
	"github.com/sb25/REST-Web-Services-interaction/models"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
	allelesService "github.com/sb25/REST-Web-Services-interaction/services/alleles"
	"github.com/sb25/REST-Web-Services-interaction/services/ingestion"
	pipelinesService "github.com/sb25/REST-Web-Services-interaction/services/pipelines"
	productsService "github.com/sb25/REST-Web-Services-interaction/services/products"
)

type (
	// "Helper" Context handed to the commands: the configuration, the
	// repository client and the services built on top of it
	SyncContext struct {
		Config    *models.Config
		Client    *targrep.Client
		Pipelines *pipelinesService.PipelineService
		Alleles   *allelesService.AlleleService
		Products  *productsService.ProductService
		Sync      *ingestion.SyncService
	}
)

func NewSyncContext(cfg *models.Config) *SyncContext {
	client := targrep.NewClient(cfg)

	ps := pipelinesService.NewPipelineService(client)
	as := allelesService.NewAlleleService(client)
	prs := productsService.NewProductService(client)

	return &SyncContext{
		Config:    cfg,
		Client:    client,
		Pipelines: ps,
		Alleles:   as,
		Products:  prs,
		Sync:      ingestion.NewSyncService(ps, as, prs, cfg.Sync.ContinueOnError),
	}
}
