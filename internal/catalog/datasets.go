package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// twelveDataStock is one row of the TwelveData stocks dataset
type twelveDataStock struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
	Country  string `json:"country"`
	Type     string `json:"type"`
}

// twelveDataETF is one row of the TwelveData ETF dataset
type twelveDataETF struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
}

// nasdaqListing is one row of nasdaqlisted.txt
type nasdaqListing struct {
	Symbol       string
	SecurityName string
	ETF          bool
}

// otherListing is one row of otherlisted.txt
type otherListing struct {
	ACTSymbol    string
	SecurityName string
	Exchange     string
	ETF          bool
}

func loadFakeTickers(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	fake := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		fake[strings.ToUpper(s)] = struct{}{}
	}
	return fake, nil
}

func loadTwelveDataStocks(path string) (map[string]twelveDataStock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Data []twelveDataStock `json:"data"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	stocks := make(map[string]twelveDataStock, len(file.Data))
	for _, s := range file.Data {
		stocks[s.Symbol] = s
	}
	return stocks, nil
}

func loadTwelveDataETFs(path string) (map[string]twelveDataETF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Data []twelveDataETF `json:"data"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	etfs := make(map[string]twelveDataETF, len(file.Data))
	for _, e := range file.Data {
		etfs[e.Symbol] = e
	}
	return etfs, nil
}

func loadNasdaqListed(path string) (map[string]nasdaqListing, error) {
	listings := make(map[string]nasdaqListing)

	err := readPipeDelimited(path, 8, func(parts []string) {
		l := nasdaqListing{
			Symbol:       parts[0],
			SecurityName: parts[1],
			ETF:          parts[6] == "Y",
		}
		listings[l.Symbol] = l
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func loadOtherListed(path string) (map[string]otherListing, error) {
	listings := make(map[string]otherListing)

	err := readPipeDelimited(path, 8, func(parts []string) {
		l := otherListing{
			ACTSymbol:    parts[0],
			SecurityName: parts[1],
			Exchange:     parts[2],
			ETF:          parts[4] == "Y",
		}
		listings[l.ACTSymbol] = l
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// readPipeDelimited reads a Nasdaq Trader symbol file: a header row,
// pipe-delimited data rows, and a "File Creation Time" trailer row.
func readPipeDelimited(path string, minFields int, onRow func(parts []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNo++
		if lineNo == 1 {
			continue // header
		}
		if strings.HasPrefix(line, "File Creation Time") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < minFields {
			continue
		}
		onRow(parts)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
