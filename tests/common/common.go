package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo"

	"github.com/sb25/REST-Web-Services-interaction/models"
	"github.com/sb25/REST-Web-Services-interaction/utils"
)

func InitConfig(t *testing.T) *models.Config {
	t.Helper()

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve common's test.config
	cfg, err := utils.LoadConfigFile(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		t.Fatalf("loading test config: %v", err)
	}
	return cfg
}

type Call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

// FakeRepository is an in-memory stand-in for the targeting repository's
// web services, served over HTTP by echo.
type FakeRepository struct {
	Server *httptest.Server

	// WrapRoot answers with {"allele": {...}} style records
	WrapRoot bool
	Username string
	Password string
	// FailWith maps "METHOD path" to a status code to answer with
	FailWith map[string]int

	mu        sync.Mutex
	pipelines []models.Pipeline
	alleles   []map[string]interface{}
	products  []map[string]interface{}
	calls     []Call
	nextId    int
}

func NewFakeRepository(t *testing.T) *FakeRepository {
	t.Helper()

	f := &FakeRepository{
		Username: "user",
		Password: "password",
		FailWith: map[string]int{},
		nextId:   1,
	}

	e := echo.New()
	e.Use(f.recordAndAuthorize)

	e.GET("/pipelines.json", f.listPipelines)
	e.GET("/alleles.json", f.findAlleles)
	e.POST("/alleles.json", f.createAllele)
	e.GET("/alleles/:file", f.getAllele)
	e.PUT("/alleles/:file", f.updateAllele)
	e.DELETE("/alleles/:file", f.deleteAllele)
	e.GET("/products.json", f.findProducts)
	e.POST("/products.json", f.createProduct)

	f.Server = httptest.NewServer(e)
	t.Cleanup(f.Server.Close)

	return f
}

// Config returns the test configuration pointed at this repository.
func (f *FakeRepository) Config(t *testing.T) *models.Config {
	cfg := InitConfig(t)
	cfg.Repository.Url = f.Server.URL
	cfg.Repository.Username = f.Username
	cfg.Repository.Password = f.Password
	return cfg
}

func (f *FakeRepository) AddPipeline(id int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pipelines = append(f.pipelines, models.Pipeline{Id: id, Name: name})
}

// AddAllele stores a record as if it had been created before and returns
// its id.
func (f *FakeRepository) AddAllele(allele map[string]interface{}) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(&f.alleles, allele)
}

func (f *FakeRepository) AddProduct(product map[string]interface{}) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(&f.products, product)
}

func (f *FakeRepository) Alleles() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}{}, f.alleles...)
}

func (f *FakeRepository) Products() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}{}, f.products...)
}

func (f *FakeRepository) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

func (f *FakeRepository) CallsTo(method string, path string) []Call {
	var matching []Call
	for _, c := range f.Calls() {
		if c.Method == method && c.Path == path {
			matching = append(matching, c)
		}
	}
	return matching
}

func (f *FakeRepository) store(collection *[]map[string]interface{}, record map[string]interface{}) int {
	id := f.nextId
	f.nextId++

	stored := map[string]interface{}{}
	for k, v := range record {
		stored[k] = v
	}
	stored["id"] = id
	*collection = append(*collection, stored)
	return id
}

func (f *FakeRepository) recordAndAuthorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		raw, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(raw))

		call := Call{
			Method: req.Method,
			Path:   strings.TrimPrefix(req.URL.Path, "/"),
			Query:  req.URL.RawQuery,
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &call.Body)
		}

		f.mu.Lock()
		f.calls = append(f.calls, call)
		status, failing := f.FailWith[fmt.Sprintf("%s %s", call.Method, call.Path)]
		f.mu.Unlock()

		if f.Username != "" {
			if u, p, ok := req.BasicAuth(); !ok || u != f.Username || p != f.Password {
				return c.String(http.StatusUnauthorized, "HTTP Basic: Access denied.")
			}
		}
		if failing {
			return c.String(status, fmt.Sprintf("failing %s %s on purpose", call.Method, call.Path))
		}

		return next(c)
	}
}

func (f *FakeRepository) wrap(root string, record interface{}) interface{} {
	if f.WrapRoot {
		return map[string]interface{}{root: record}
	}
	return record
}

func (f *FakeRepository) wrapAll(root string, records []map[string]interface{}) []interface{} {
	wrapped := make([]interface{}, 0, len(records))
	for _, r := range records {
		wrapped = append(wrapped, f.wrap(root, r))
	}
	return wrapped
}

func (f *FakeRepository) listPipelines(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records := make([]map[string]interface{}, 0, len(f.pipelines))
	for _, p := range f.pipelines {
		records = append(records, map[string]interface{}{"id": p.Id, "name": p.Name})
	}
	return c.JSON(http.StatusOK, f.wrapAll("pipeline", records))
}

func (f *FakeRepository) findAlleles(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := []string{"allele_symbol_superscript", "ikmc_project_id", "mgi_accession_id"}
	matches := filter(f.alleles, c, keys)
	return c.JSON(http.StatusOK, f.wrapAll("allele", matches))
}

func (f *FakeRepository) findProducts(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := filter(f.products, c, []string{"escell_clone"})
	return c.JSON(http.StatusOK, f.wrapAll("product", matches))
}

func (f *FakeRepository) createAllele(c echo.Context) error {
	return f.create(c, "allele", &f.alleles)
}

func (f *FakeRepository) createProduct(c echo.Context) error {
	return f.create(c, "product", &f.products)
}

func (f *FakeRepository) create(c echo.Context, root string, collection *[]map[string]interface{}) error {
	var body map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	record, ok := body[root].(map[string]interface{})
	if !ok {
		return c.String(http.StatusUnprocessableEntity, fmt.Sprintf("missing %s", root))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.store(collection, record)
	return c.JSON(http.StatusCreated, f.wrap(root, (*collection)[indexOf(*collection, id)]))
}

func (f *FakeRepository) getAllele(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := indexOf(f.alleles, alleleId(c))
	if i < 0 {
		return c.String(http.StatusNotFound, "not found")
	}
	return c.JSON(http.StatusOK, f.wrap("allele", f.alleles[i]))
}

func (f *FakeRepository) updateAllele(c echo.Context) error {
	var body map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := indexOf(f.alleles, alleleId(c))
	if i < 0 {
		return c.String(http.StatusNotFound, "not found")
	}
	if attributes, ok := body["allele"].(map[string]interface{}); ok {
		for k, v := range attributes {
			f.alleles[i][k] = v
		}
	}
	return c.JSON(http.StatusOK, f.wrap("allele", f.alleles[i]))
}

func (f *FakeRepository) deleteAllele(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := indexOf(f.alleles, alleleId(c))
	if i < 0 {
		return c.String(http.StatusNotFound, "not found")
	}
	f.alleles = append(f.alleles[:i], f.alleles[i+1:]...)
	return c.NoContent(http.StatusNoContent)
}

func alleleId(c echo.Context) int {
	id, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSuffix(c.Param("file"), "/"), ".json"))
	return id
}

func indexOf(records []map[string]interface{}, id int) int {
	for i, r := range records {
		if r["id"] == id {
			return i
		}
	}
	return -1
}

// filter keeps the records matching every key present in the query string.
func filter(records []map[string]interface{}, c echo.Context, keys []string) []map[string]interface{} {
	matches := []map[string]interface{}{}
	for _, r := range records {
		matched := true
		for _, k := range keys {
			want := c.QueryParam(k)
			if want == "" {
				continue
			}
			if fmt.Sprint(r[k]) != want {
				matched = false
				break
			}
		}
		if matched {
			matches = append(matches, r)
		}
	}
	return matches
}
