package extract

import (
	"testing"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userSays(content string) models.Conversation {
	return models.Conversation{{Role: models.RoleUser, Content: content}}
}

func TestPriorityOrder(t *testing.T) {
	assert.Equal(t, []Category{CategoryMovie, CategoryStock, CategoryCrypto, CategoryNews}, Priority())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		category Category
		entity   *Entity
	}{
		{
			name:     "ticker with stock keyword",
			content:  "what is AAPL stock price",
			category: CategoryStock,
			entity:   &Entity{Symbol: "AAPL"},
		},
		{
			name:     "known ticker without keyword",
			content:  "How is TSLA doing?",
			category: CategoryStock,
			entity:   &Entity{Symbol: "TSLA"},
		},
		{
			name:     "company name lookup",
			content:  "how much is a share of nvidia right now",
			category: CategoryStock,
			entity:   &Entity{Symbol: "NVDA"},
		},
		{
			name:     "unknown ticker preferred over company table",
			content:  "SNAP or netflix stock?",
			category: CategoryStock,
			entity:   &Entity{Symbol: "SNAP"},
		},
		{
			name:     "stock keyword without symbol",
			content:  "which stocks should I watch",
			category: CategoryStock,
			entity:   nil,
		},
		{
			name:     "movie wins over ticker",
			content:  "When is the new AAPL movie released?",
			category: CategoryMovie,
			entity:   &Entity{Title: "aapl"},
		},
		{
			name:     "movie title cleaned",
			content:  "When is the Avengers Doomsday movie release date?",
			category: CategoryMovie,
			entity:   &Entity{Title: "avengers doomsday"},
		},
		{
			name:     "typographic apostrophe in movie question",
			content:  "When’s the Dune release date?",
			category: CategoryMovie,
			entity:   &Entity{Title: "dune"},
		},
		{
			name:     "movie keyword only",
			content:  "movie?",
			category: CategoryMovie,
			entity:   nil,
		},
		{
			name:     "single coin",
			content:  "what's the bitcoin price",
			category: CategoryCrypto,
			entity:   &Entity{Coins: []string{CoinBitcoin}},
		},
		{
			name:     "coin symbol is not a stock ticker",
			content:  "ETH price please",
			category: CategoryCrypto,
			entity:   &Entity{Coins: []string{CoinEthereum}},
		},
		{
			name:     "generic crypto asks for all coins",
			content:  "how is crypto doing",
			category: CategoryCrypto,
			entity:   &Entity{Coins: []string{CoinBitcoin, CoinEthereum}},
		},
		{
			name:     "eth inside a word does not match",
			content:  "what method should I use",
			category: CategoryNone,
			entity:   nil,
		},
		{
			name:     "news topic",
			content:  "latest news on elections",
			category: CategoryNews,
			entity:   &Entity{Topic: "elections"},
		},
		{
			name:     "news default topic",
			content:  "What are today's headlines?",
			category: CategoryNews,
			entity:   &Entity{Topic: DefaultNewsTopic},
		},
		{
			name:     "typographic apostrophe in news question",
			content:  "What’s today’s news on climate?",
			category: CategoryNews,
			entity:   &Entity{Topic: "climate"},
		},
		{
			name:     "company name alone is a stock query",
			content:  "tell me about apple",
			category: CategoryStock,
			entity:   &Entity{Symbol: "AAPL"},
		},
		{
			name:     "crypto wins over news",
			content:  "latest bitcoin news",
			category: CategoryCrypto,
			entity:   &Entity{Coins: []string{CoinBitcoin}},
		},
		{
			name:     "no trigger",
			content:  "write me a poem about the sea",
			category: CategoryNone,
			entity:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, entity := Classify(userSays(tt.content))

			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.entity, entity)
		})
	}
}

func TestClassifyUsesLastMessageOnly(t *testing.T) {
	conv := models.Conversation{
		{Role: models.RoleUser, Content: "what is AAPL stock price"},
		{Role: models.RoleAssistant, Content: "It is $190."},
		{Role: models.RoleUser, Content: "thanks, write me a haiku"},
	}

	category, entity := Classify(conv)

	assert.Equal(t, CategoryNone, category)
	assert.Nil(t, entity)
}

func TestClassifyEmptyConversation(t *testing.T) {
	category, entity := Classify(nil)

	assert.Equal(t, CategoryNone, category)
	assert.Nil(t, entity)
}

func TestClassifyKnownSymbolsAndCompanies(t *testing.T) {
	for _, c := range companies {
		t.Run(c.symbol, func(t *testing.T) {
			category, entity := ClassifyText("price of " + c.symbol)
			require.Equal(t, CategoryStock, category)
			require.NotNil(t, entity)
			assert.Equal(t, c.symbol, entity.Symbol)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	inputs := []string{
		"what is AAPL stock price",
		"latest news on elections",
		"bitcoin and ethereum",
		"when does the batman film come out",
	}

	for _, in := range inputs {
		firstCategory, firstEntity := ClassifyText(in)
		for i := 0; i < 20; i++ {
			category, entity := ClassifyText(in)
			assert.Equal(t, firstCategory, category)
			assert.Equal(t, firstEntity, entity)
		}
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "stock", CategoryStock.String())
	assert.Equal(t, "crypto", CategoryCrypto.String())
	assert.Equal(t, "movie", CategoryMovie.String())
	assert.Equal(t, "news", CategoryNews.String())
	assert.Equal(t, "none", CategoryNone.String())
}
