package extract

import "regexp"

// Coin identifiers as understood by the price source
const (
	CoinBitcoin  = "bitcoin"
	CoinEthereum = "ethereum"
)

var (
	cryptoTrigger  = regexp.MustCompile(`\b(?:bitcoin|btc|ethereum|eth|ether|crypto|cryptos|cryptocurrency|cryptocurrencies)\b`)
	bitcoinMention = regexp.MustCompile(`\b(?:bitcoin|btc)\b`)
	etherMention   = regexp.MustCompile(`\b(?:ethereum|eth|ether)\b`)
)

func matchCrypto(lower, _ string) bool {
	return cryptoTrigger.MatchString(lower)
}

// extractCrypto narrows the coin set to the coins named in the text. A
// generic "crypto" question asks for every supported coin.
func extractCrypto(lower, _ string) (Entity, bool) {
	var coins []string
	if bitcoinMention.MatchString(lower) {
		coins = append(coins, CoinBitcoin)
	}
	if etherMention.MatchString(lower) {
		coins = append(coins, CoinEthereum)
	}
	if len(coins) == 0 {
		coins = []string{CoinBitcoin, CoinEthereum}
	}
	return Entity{Coins: coins}, true
}
