package alleles

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sb25/REST-Web-Services-interaction/models"
	"github.com/sb25/REST-Web-Services-interaction/models/ingest/structs"
	"github.com/sb25/REST-Web-Services-interaction/repositories/targrep"
)

const (
	allelesPath = "alleles.json"
	allelePath  = "alleles/%d.json"
	alleleRoot  = "allele"
)

type (
	AlleleService struct {
		client *targrep.Client
	}
)

func NewAlleleService(client *targrep.Client) *AlleleService {
	return &AlleleService{
		client: client,
	}
}

// Find looks an allele up by its natural key. A nil allele means no match.
func (as *AlleleService) Find(ctx context.Context, candidate models.Allele) (*models.Allele, error) {
	params := url.Values{}
	params.Set("allele_symbol_superscript", candidate.AlleleSymbolSuperscript)
	params.Set("ikmc_project_id", candidate.IkmcProjectId)
	params.Set("mgi_accession_id", candidate.MgiAccessionId)

	match, err := as.client.FindUnique(ctx, allelesPath, params, alleleRoot, structs.NaturalKey(candidate))
	if err != nil || match == nil {
		return nil, err
	}

	var found models.Allele
	if err := as.client.DecodeRecord(http.MethodGet, allelesPath, match, alleleRoot, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

func (as *AlleleService) Create(ctx context.Context, candidate models.Allele) (*models.Allele, error) {
	// the repository assigns ids
	candidate.Id = 0

	response, err := as.client.Post(ctx, allelesPath, map[string]interface{}{alleleRoot: candidate})
	if err != nil {
		return nil, err
	}

	var created models.Allele
	if err := as.client.DecodeRecord(http.MethodPost, allelesPath, response, alleleRoot, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Resolve returns the remote allele matching the candidate's natural key,
// creating it first when there is none. The bool reports a create.
func (as *AlleleService) Resolve(ctx context.Context, candidate models.Allele) (*models.Allele, bool, error) {
	found, err := as.Find(ctx, candidate)
	if err != nil {
		return nil, false, err
	}
	if found != nil {
		slog.Debug("allele already in repository", "id", found.Id, "key", structs.NaturalKey(candidate))
		return found, false, nil
	}

	created, err := as.Create(ctx, candidate)
	if err != nil {
		return nil, false, err
	}
	slog.Info("created allele", "id", created.Id, "key", structs.NaturalKey(candidate))
	return created, true, nil
}

// List returns one page of alleles.
func (as *AlleleService) List(ctx context.Context, page int) ([]models.Allele, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	response, err := as.client.Get(ctx, allelesPath, params)
	if err != nil {
		return nil, err
	}

	var alleles []models.Allele
	if err := as.client.DecodeRecords(http.MethodGet, allelesPath, params, response, alleleRoot, &alleles); err != nil {
		return nil, err
	}
	return alleles, nil
}

func (as *AlleleService) Get(ctx context.Context, id int) (*models.Allele, error) {
	path := fmt.Sprintf(allelePath, id)
	response, err := as.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var allele models.Allele
	if err := as.client.DecodeRecord(http.MethodGet, path, response, alleleRoot, &allele); err != nil {
		return nil, err
	}
	return &allele, nil
}

// Update replaces the attributes of allele id. Repositories that answer
// with an empty body get the submitted allele back.
func (as *AlleleService) Update(ctx context.Context, id int, allele models.Allele) (*models.Allele, error) {
	allele.Id = 0

	path := fmt.Sprintf(allelePath, id)
	response, err := as.client.Put(ctx, path, map[string]interface{}{alleleRoot: allele})
	if err != nil {
		return nil, err
	}

	if response == nil {
		allele.Id = id
		return &allele, nil
	}

	var updated models.Allele
	if err := as.client.DecodeRecord(http.MethodPut, path, response, alleleRoot, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (as *AlleleService) Delete(ctx context.Context, id int) error {
	_, err := as.client.Delete(ctx, fmt.Sprintf(allelePath, id))
	return err
}
