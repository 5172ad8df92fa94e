package ledger

import (
	"testing"
	"time"

	"posdz-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, e *Engine, name string, qty int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: 10, Quantity: qty}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

func seedCustomer(t *testing.T, e *Engine, name string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name}
	require.NoError(t, e.db.Create(&c).Error)
	return c
}

func TestRecordSale_CashSale(t *testing.T) {
	e := newTestEngine(t)
	p := seedProduct(t, e, "Milk", 20)

	sale, err := e.RecordSale(SaleInput{
		Items: []SaleItemInput{
			{ProductID: p.ID, ProductName: p.Name, Quantity: 3, UnitPrice: 30},
			{ProductID: p.ID, ProductName: p.Name, Quantity: 2, UnitPrice: 10},
		},
		Discount: 10,
	})
	require.NoError(t, err)

	// items sum 110, minus discount 10
	assert.Equal(t, 100.0, sale.Total)
	assert.Equal(t, 100.0, sale.Paid, "cash sale is fully paid")
	assert.False(t, sale.IsDebt)
	assert.Equal(t, "#001", sale.InvoiceNumber)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, 90.0, sale.Items[0].Total)
	assert.Equal(t, 20.0, sale.Items[1].Total)

	var stored []models.SaleItem
	require.NoError(t, e.db.Where("sale_id = ?", sale.ID).Find(&stored).Error)
	assert.Len(t, stored, 2)
}

func TestRecordSale_Validation(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name  string
		input SaleInput
	}{
		{"no items", SaleInput{}},
		{"zero quantity", SaleInput{
			Items: []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: 0, UnitPrice: 5}},
		}},
		{"negative quantity", SaleInput{
			Items: []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: -2, UnitPrice: 5}},
		}},
		{"negative unit price", SaleInput{
			Items: []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: -5}},
		}},
		{"discount exceeds total", SaleInput{
			Items:    []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: 5}},
			Discount: 6,
		}},
		{"negative discount", SaleInput{
			Items:    []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: 5}},
			Discount: -1,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.RecordSale(tc.input)
			assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)
		})
	}

	var count int64
	e.db.Model(&models.Sale{}).Count(&count)
	assert.Zero(t, count, "rejected sales must not be persisted")
}

func TestRecordSale_CreditSaleCreatesDebt(t *testing.T) {
	e := newTestEngine(t)
	p := seedProduct(t, e, "Rice", 50)
	c := seedCustomer(t, e, "Amine")

	sale, err := e.RecordSale(SaleInput{
		CustomerID: &c.ID,
		Items:      []SaleItemInput{{ProductID: p.ID, ProductName: p.Name, Quantity: 4, UnitPrice: 50}},
		Paid:       120,
		IsDebt:     true,
	})
	require.NoError(t, err)
	assert.True(t, sale.IsDebt)
	assert.Equal(t, 200.0, sale.Total)
	assert.Equal(t, 120.0, sale.Paid)

	var debt models.Debt
	require.NoError(t, e.db.Where("sale_id = ?", sale.ID).First(&debt).Error)
	assert.Equal(t, c.ID, debt.CustomerID)
	assert.Equal(t, 80.0, debt.Amount)
	assert.False(t, debt.IsPaid)

	balance, err := e.CustomerBalance(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, balance)
}

func TestRecordSale_CreditSaleValidation(t *testing.T) {
	e := newTestEngine(t)
	c := seedCustomer(t, e, "Amine")

	// no customer
	_, err := e.RecordSale(SaleInput{
		Items:  []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: 100}},
		IsDebt: true,
	})
	assert.True(t, IsValidation(err))

	// paid >= total on a credit sale
	_, err = e.RecordSale(SaleInput{
		CustomerID: &c.ID,
		Items:      []SaleItemInput{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: 100}},
		Paid:       100,
		IsDebt:     true,
	})
	assert.True(t, IsValidation(err))
}

func TestRecordSale_DecrementsStock(t *testing.T) {
	e := newTestEngine(t)
	p := seedProduct(t, e, "Sugar", 10)

	_, err := e.RecordSale(SaleInput{
		Items: []SaleItemInput{{ProductID: p.ID, ProductName: p.Name, Quantity: 4, UnitPrice: 5}},
	})
	require.NoError(t, err)

	var after models.Product
	require.NoError(t, e.db.First(&after, p.ID).Error)
	assert.Equal(t, 6, after.Quantity)
}

func TestRecordSale_UnknownProductDoesNotAbortSale(t *testing.T) {
	e := newTestEngine(t)

	// Stock decrement is best-effort: a missing catalog row must not fail
	// the checkout.
	sale, err := e.RecordSale(SaleInput{
		Items: []SaleItemInput{{ProductID: 999, ProductName: "Ghost", Quantity: 1, UnitPrice: 5}},
	})
	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
}

func TestRecordSale_ConsumesOneInvoiceNumberPerSale(t *testing.T) {
	e := newTestEngine(t)
	e.at(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	p := seedProduct(t, e, "Tea", 10)

	first, err := e.RecordSale(SaleInput{
		Items: []SaleItemInput{{ProductID: p.ID, ProductName: p.Name, Quantity: 1, UnitPrice: 5}},
	})
	require.NoError(t, err)
	second, err := e.RecordSale(SaleInput{
		Items: []SaleItemInput{{ProductID: p.ID, ProductName: p.Name, Quantity: 1, UnitPrice: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, "#001", first.InvoiceNumber)
	assert.Equal(t, "#002", second.InvoiceNumber)
}
