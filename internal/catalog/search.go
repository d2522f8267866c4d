package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"

	"github.com/modabuy/storefront-backend/pkg/config"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// ProductDoc is the search-index projection of a product. It is a read model;
// stock truth lives in postgres.
type ProductDoc struct {
	ID              string   `json:"id"`
	BrandName       string   `json:"brand_name"`
	ProductName     string   `json:"product_name"`
	Categories      []string `json:"categories"`
	Price           int      `json:"price"`
	DiscountedPrice *int     `json:"discounted_price,omitempty"`
	Stock           int      `json:"stock"`
	SoldOut         bool     `json:"sold_out"`
}

// UnitPrice mirrors models.Product: discounted price wins when set.
func (d *ProductDoc) UnitPrice() int {
	if d.DiscountedPrice != nil {
		return *d.DiscountedPrice
	}
	return d.Price
}

// Page is one page of search results plus the state needed for the next one.
type Page struct {
	Items       []ProductDoc `json:"items"`
	PITID       string       `json:"pit_id"`
	SearchAfter []any        `json:"search_after,omitempty"`
}

// PageQuery selects and positions a listing or search page.
type PageQuery struct {
	Keyword     string
	Category    string
	PITID       string
	SearchAfter []any
	Size        int
}

// SearchRepository talks to Elasticsearch. Every call is bounded by the
// configured timeout; expiry surfaces as a retryable dependency error.
type SearchRepository struct {
	client    *elastic.Client
	index     string
	keepAlive string
	pageSize  int
	timeout   timeoutFn
	logg      *logger.Logger
}

type timeoutFn func(ctx context.Context) (context.Context, context.CancelFunc)

func NewSearchRepository(cfg config.CatalogConfig, logg *logger.Logger) (*SearchRepository, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(cfg.ElasticURL),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("connect elasticsearch: %w", err)
	}

	return &SearchRepository{
		client:    client,
		index:     cfg.ProductIndex,
		keepAlive: cfg.PITKeepAlive,
		pageSize:  cfg.PageSize,
		timeout: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, cfg.RequestTimeout)
		},
		logg: logg,
	}, nil
}

func (r *SearchRepository) wrapErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, op+" timed out", err)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, op+" failed", err)
}

// GetDoc fetches one product document.
func (r *SearchRepository) GetDoc(ctx context.Context, id uuid.UUID) (*ProductDoc, error) {
	ctx, cancel := r.timeout(ctx)
	defer cancel()

	res, err := r.client.Get().Index(r.index).Id(id.String()).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, r.wrapErr("get product doc", err)
	}
	if !res.Found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var doc ProductDoc
	if err := json.Unmarshal(res.Source, &doc); err != nil {
		return nil, fmt.Errorf("decode product doc: %w", err)
	}
	return &doc, nil
}

// GetDocs fetches documents for all ids in one query. Missing ids are simply
// absent from the result.
func (r *SearchRepository) GetDocs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductDoc, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]ProductDoc{}, nil
	}

	ctx, cancel := r.timeout(ctx)
	defer cancel()

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	res, err := r.client.Search().
		Index(r.index).
		Query(elastic.NewIdsQuery().Ids(strIDs...)).
		Size(len(ids)).
		Do(ctx)
	if err != nil {
		return nil, r.wrapErr("get product docs", err)
	}

	docs := make(map[uuid.UUID]ProductDoc, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc ProductDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode product doc %s: %w", hit.Id, err)
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			r.logg.Warn(ctx, "search doc with malformed id: "+doc.ID)
			continue
		}
		docs[id] = doc
	}
	return docs, nil
}

// Page runs a listing or search page with point-in-time pagination. When the
// query carries no PIT one is opened and its id returned for the next page.
func (r *SearchRepository) Page(ctx context.Context, q PageQuery) (*Page, error) {
	ctx, cancel := r.timeout(ctx)
	defer cancel()

	pitID := q.PITID
	if pitID == "" {
		opened, err := r.client.OpenPointInTime(r.index).KeepAlive(r.keepAlive).Do(ctx)
		if err != nil {
			return nil, r.wrapErr("open point in time", err)
		}
		pitID = opened.Id
	}

	size := q.Size
	if size <= 0 {
		size = r.pageSize
	}

	search := r.client.Search().
		Query(r.buildQuery(q)).
		Sort("id", true).
		Size(size).
		PointInTime(elastic.NewPointInTimeWithKeepAlive(pitID, r.keepAlive))
	if len(q.SearchAfter) > 0 {
		search = search.SearchAfter(q.SearchAfter...)
	}

	res, err := search.Do(ctx)
	if err != nil {
		return nil, r.wrapErr("search products", err)
	}

	page := &Page{Items: make([]ProductDoc, 0, len(res.Hits.Hits)), PITID: pitID}
	for _, hit := range res.Hits.Hits {
		var doc ProductDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode product doc %s: %w", hit.Id, err)
		}
		page.Items = append(page.Items, doc)
		page.SearchAfter = hit.Sort
	}
	return page, nil
}

func (r *SearchRepository) buildQuery(q PageQuery) elastic.Query {
	switch {
	case q.Keyword != "":
		return elastic.NewMultiMatchQuery(q.Keyword, "product_name", "brand_name")
	case q.Category != "":
		return elastic.NewTermQuery("categories", q.Category)
	default:
		return elastic.NewMatchAllQuery()
	}
}

// ClosePIT releases a point-in-time context before its keep-alive expires.
func (r *SearchRepository) ClosePIT(ctx context.Context, pitID string) error {
	ctx, cancel := r.timeout(ctx)
	defer cancel()

	if _, err := r.client.ClosePointInTime(pitID).Do(ctx); err != nil {
		return r.wrapErr("close point in time", err)
	}
	return nil
}

// UpsertDoc writes a full document. Used by the indexer.
func (r *SearchRepository) UpsertDoc(ctx context.Context, doc ProductDoc) error {
	ctx, cancel := r.timeout(ctx)
	defer cancel()

	_, err := r.client.Index().
		Index(r.index).
		Id(doc.ID).
		BodyJson(doc).
		Do(ctx)
	if err != nil {
		return r.wrapErr("upsert product doc", err)
	}
	return nil
}

// ApplyStock partially updates stock and sold-out on a document. Used by the
// indexer when consuming stock events.
func (r *SearchRepository) ApplyStock(ctx context.Context, id uuid.UUID, stock int, soldOut bool) error {
	ctx, cancel := r.timeout(ctx)
	defer cancel()

	_, err := r.client.Update().
		Index(r.index).
		Id(id.String()).
		Doc(map[string]any{"stock": stock, "sold_out": soldOut}).
		Do(ctx)
	if elastic.IsNotFound(err) {
		r.logg.Warn(ctx, "stock update for unindexed product "+id.String())
		return nil
	}
	if err != nil {
		return r.wrapErr("apply stock to product doc", err)
	}
	return nil
}
