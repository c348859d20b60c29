package services

import (
	"math/rand"
	"sort"
	"time"

	"expensetracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseGenerator struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// categoryProfile pairs a sample category with realistic merchant names
// and an amount range for generated expenses.
type categoryProfile struct {
	category  string
	merchants []string
	minAmount float64
	maxAmount float64
}

// NewExpenseGenerator creates a generator for realistic sample expenses
func NewExpenseGenerator() ExpenseGeneratorInterface {
	seed := time.Now().UnixNano()
	return &expenseGenerator{
		faker: gofakeit.New(uint64(seed)),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func categoryPool() []categoryProfile {
	return []categoryProfile{
		{
			category:  "groceries",
			merchants: []string{"Walmart", "Kroger", "Whole Foods", "Trader Joe's", "Aldi", "Costco"},
			minAmount: 8, maxAmount: 240,
		},
		{
			category:  "dining",
			merchants: []string{"Starbucks", "Chipotle", "Panera Bread", "Pizza Hut", "Subway"},
			minAmount: 4, maxAmount: 90,
		},
		{
			category:  "transport",
			merchants: []string{"Uber", "Lyft", "Shell", "Chevron", "Metro Transit"},
			minAmount: 2, maxAmount: 120,
		},
		{
			category:  "entertainment",
			merchants: []string{"Netflix", "Spotify", "AMC Theaters", "Steam"},
			minAmount: 5, maxAmount: 80,
		},
		{
			category:  "utilities",
			merchants: []string{"AT&T", "Comcast", "PG&E", "Water Department"},
			minAmount: 20, maxAmount: 320,
		},
		{
			category:  "healthcare",
			merchants: []string{"CVS Pharmacy", "Walgreens", "LabCorp"},
			minAmount: 5, maxAmount: 400,
		},
		{
			category: models.CategoryUndefined,
			// Merchant is faked per expense for uncategorized spend.
			minAmount: 1, maxAmount: 150,
		},
	}
}

// GenerateExpense produces one realistic expense for the user on the
// given date. The result is not persisted.
func (g *expenseGenerator) GenerateExpense(userID uuid.UUID, date time.Time) *models.Expense {
	pool := categoryPool()
	profile := pool[g.rng.Intn(len(pool))]

	name := g.faker.Company()
	if len(profile.merchants) > 0 {
		name = profile.merchants[g.rng.Intn(len(profile.merchants))]
	}

	amount := decimal.NewFromFloat(g.faker.Float64Range(profile.minAmount, profile.maxAmount)).Round(2)

	return &models.Expense{
		UserID:   userID,
		Name:     name,
		Amount:   amount,
		Date:     date,
		Category: profile.category,
	}
}

// GenerateExpenses produces count expenses spread over [startDate, endDate],
// ordered by date.
func (g *expenseGenerator) GenerateExpenses(userID uuid.UUID, startDate, endDate time.Time, count int) []*models.Expense {
	if count <= 0 || endDate.Before(startDate) {
		return nil
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	expenses := make([]*models.Expense, 0, count)
	for i := 0; i < count; i++ {
		offset := 0
		if days > 1 {
			offset = g.rng.Intn(days)
		}
		date := startDate.AddDate(0, 0, offset)
		expenses = append(expenses, g.GenerateExpense(userID, date))
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date)
	})

	return expenses
}
