package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"jarvis/clients"
)

// extractExpenseJS pulls balance, income, expenses and the five most recent
// transactions out of the expense tracker page. Selectors match the tracker's
// markup variants.
const extractExpenseJS = `() => {
	const pick = (sel) => document.querySelector(sel)?.textContent?.trim() || 'N/A';
	const balance = pick('.balance, #balance, [data-balance]');
	const income = pick('.income, #income, [data-income]');
	const expenses = pick('.expenses, #expenses, [data-expenses]');

	const transactions = [];
	const rows = document.querySelectorAll('.transaction, .transaction-item, [data-transaction]');
	rows.forEach((el, index) => {
		if (index < 5) {
			transactions.push({
				description: el.querySelector('.description, .name')?.textContent?.trim() || '',
				amount: el.querySelector('.amount, .value')?.textContent?.trim() || '',
				date: el.querySelector('.date, .time')?.textContent?.trim() || ''
			});
		}
	});

	return { balance, income, expenses, transactions };
}`

// ScraperClient implements the clients.ScraperClient interface with a
// lazily-launched headless browser.
type ScraperClient struct {
	mutex   sync.Mutex
	browser *rod.Browser
	connect func() (*rod.Browser, error)
}

func NewScraperClient() *ScraperClient {
	return &ScraperClient{connect: connectHeadlessBrowser}
}

// connectHeadlessBrowser launches Chromium detached from any command context.
// The browser lives for the process lifetime; per-command contexts apply to
// page operations only.
func connectHeadlessBrowser() (*rod.Browser, error) {
	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	log.Printf("✅ Headless browser launched for scraping")
	return browser, nil
}

func (c *ScraperClient) ensureBrowser() (*rod.Browser, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.browser != nil {
		return c.browser, nil
	}

	browser, err := c.connect()
	if err != nil {
		return nil, err
	}
	c.browser = browser
	return c.browser, nil
}

// Close shuts the shared browser down.
func (c *ScraperClient) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.browser = nil
	return err
}

// ScrapeExpenseTracker loads the expense tracker page and extracts its
// current balances and recent transactions.
func (c *ScraperClient) ScrapeExpenseTracker(ctx context.Context, url string) (*clients.ExpenseReport, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("expense tracker URL is required")
	}

	browser, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.Context(ctx).WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}

	res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      extractExpenseJS,
		ByValue: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract expense data: %w", err)
	}

	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extracted data: %w", err)
	}

	var data clients.ExpenseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode extracted data: %w", err)
	}

	normalizeExpenseData(&data)
	log.Printf("📋 Scraped expense tracker %s: %d transactions", url, len(data.Transactions))

	return &clients.ExpenseReport{
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}

func normalizeExpenseData(data *clients.ExpenseData) {
	data.Balance = NormalizeAmount(data.Balance)
	data.Income = NormalizeAmount(data.Income)
	data.Expenses = NormalizeAmount(data.Expenses)
	for i := range data.Transactions {
		data.Transactions[i].Amount = NormalizeAmount(data.Transactions[i].Amount)
	}
	if data.Transactions == nil {
		data.Transactions = []clients.Transaction{}
	}
}
