package pipelines

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/sb25/REST-Web-Services-interaction/models"
	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest/structs"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
)

const pipelinesPath = "pipelines.json"

type (
	// PipelineService keeps the name -> pipeline registry. It is filled
	// once by Load and only read afterwards.
	PipelineService struct {
		Initialized bool
		client      *targrep.Client
		byName      map[string]models.Pipeline
	}
)

func NewPipelineService(client *targrep.Client) *PipelineService {
	return &PipelineService{
		Initialized: false,
		client:      client,
		byName:      map[string]models.Pipeline{},
	}
}

func (ps *PipelineService) IsLoaded() bool {
	return ps.Initialized
}

func (ps *PipelineService) Load(ctx context.Context) error {
	response, err := ps.client.Get(ctx, pipelinesPath, nil)
	if err != nil {
		return err
	}

	var pipelines []models.Pipeline
	if err := ps.client.DecodeRecords(http.MethodGet, pipelinesPath, nil, response, "pipeline", &pipelines); err != nil {
		return err
	}

	byName := make(map[string]models.Pipeline, len(pipelines))
	for _, p := range pipelines {
		// duplicate names: last one wins
		byName[p.Name] = p
	}

	ps.byName = byName
	ps.Initialized = true

	slog.Info("loaded pipelines", "count", len(byName))
	return nil
}

func (ps *PipelineService) Lookup(name string) (models.Pipeline, bool) {
	p, ok := ps.byName[name]
	return p, ok
}

// All returns the registered pipelines ordered by id.
func (ps *PipelineService) All() []models.Pipeline {
	all := make([]models.Pipeline, 0, len(ps.byName))
	for _, p := range ps.byName {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	return all
}

// ResolvePipelineId sets the record's pipeline_id from its pipeline name.
// Records that already carry an id are left alone.
func (ps *PipelineService) ResolvePipelineId(record *structs.AlleleImportRecord) error {
	if record.PipelineId != 0 {
		return nil
	}

	p, ok := ps.Lookup(record.Pipeline)
	if !ok {
		return fmt.Errorf("%w %q", e.ErrUnknownPipeline, record.Pipeline)
	}
	record.PipelineId = p.Id
	return nil
}
