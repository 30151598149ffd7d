package news

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/echo-relay/echo/internal/infrastructure/gnews"
	"github.com/echo-relay/echo/pkg/httpext"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	DefaultCategory = "general"
	PageSize        = 10
)

// HeadlineClient lists top headlines by category
type HeadlineClient interface {
	TopHeadlines(ctx context.Context, category string, page, max int) (*gnews.ArticlesResponse, error)
}

type headlinesQuery struct {
	Category string `validate:"headline_category"`
	Page     int    `validate:"min=1,max=100"`
}

// HeadlinesResponse is one page of headlines
type HeadlinesResponse struct {
	Category      string          `json:"category"`
	Page          int             `json:"page"`
	TotalArticles int             `json:"totalArticles"`
	Articles      []gnews.Article `json:"articles"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("headline_category", func(fl validator.FieldLevel) bool {
		return slices.Contains(gnews.HeadlineCategories, fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// HandleHeadlines serves one page of top headlines for a category
func HandleHeadlines(client HeadlineClient, w http.ResponseWriter, r *http.Request) {
	if client == nil {
		log.Warn().Msg("Headlines requested but news source is not configured")
		httpext.JsonError(w, "News service not configured", http.StatusServiceUnavailable)
		return
	}

	query := headlinesQuery{Category: DefaultCategory, Page: 1}

	if c := r.URL.Query().Get("category"); c != "" {
		query.Category = c
	}
	if p := r.URL.Query().Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			httpext.JsonError(w, "Invalid page", http.StatusBadRequest)
			return
		}
		query.Page = page
	}

	if err := validate.Struct(query); err != nil {
		log.Warn().Err(err).Msg("Headlines query validation failed")
		httpext.JsonError(w, "Invalid category or page", http.StatusBadRequest)
		return
	}

	resp, err := client.TopHeadlines(r.Context(), query.Category, query.Page, PageSize)
	if err != nil {
		log.Error().Err(err).Str("category", query.Category).Int("page", query.Page).Msg("Failed to fetch headlines")
		httpext.JsonError(w, "News service failed", http.StatusInternalServerError)
		return
	}

	articles := resp.Articles
	if articles == nil {
		articles = []gnews.Article{}
	}

	log.Info().
		Str("category", query.Category).
		Int("page", query.Page).
		Int("articles", len(articles)).
		Msg("Headlines served")

	httpext.JsonResponse(w, HeadlinesResponse{
		Category:      query.Category,
		Page:          query.Page,
		TotalArticles: resp.TotalArticles,
		Articles:      articles,
	})
}
