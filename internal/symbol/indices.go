package symbol

// Index describes one selectable market index.
type Index struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// Default is selected until the user picks another index.
const Default = "^NSEI"

// Indices lists the selectable indices in display order.
var Indices = []Index{
	{Symbol: "^NSEI", Name: "NIFTY 50", Description: "NSE Nifty 50 Index", Tag: "NSE"},
	{Symbol: "^NSEBANK", Name: "Bank NIFTY", Description: "NSE Bank Index", Tag: "NSE"},
	{Symbol: "^BSESN", Name: "SENSEX", Description: "BSE Sensex 30", Tag: "BSE"},
}

// Lookup returns the index metadata for sym.
func Lookup(sym string) (Index, bool) {
	for _, idx := range Indices {
		if idx.Symbol == sym {
			return idx, true
		}
	}
	return Index{}, false
}
