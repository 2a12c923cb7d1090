package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/ckscan/domain"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func metricsByName(response *domain.CKResponse) map[string]domain.ClassMetrics {
	byName := make(map[string]domain.ClassMetrics)
	for _, class := range response.Classes {
		byName[class.Name] = class
	}
	return byName
}

func TestAnalyzePythonSource(t *testing.T) {
	path := writeTempFile(t, "shop.py", `
class Product:
    def __init__(self):
        self.price = 0

class Order(Product):
    def __init__(self):
        self.items = []
        self.total = 0

    def add(self, product):
        self.items.append(product)
        self.total += Pricing.net(product)

    def submit(self):
        Mailer.send(self.total)
`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{path}})
	require.NoError(t, err)

	byName := metricsByName(response)
	require.Contains(t, byName, "Product")
	require.Contains(t, byName, "Order")

	order := byName["Order"]
	assert.Equal(t, 3, order.Values[domain.MetricWMC])
	assert.Equal(t, 1, order.Values[domain.MetricDIT])
	assert.Equal(t, 0, order.Values[domain.MetricNOC])

	product := byName["Product"]
	assert.Equal(t, 0, product.Values[domain.MetricDIT])
	assert.Equal(t, 1, product.Values[domain.MetricNOC])

	assert.Equal(t, 1, response.Summary.FilesAnalyzed)
	assert.Equal(t, 2, response.Summary.TotalClasses)
}

func TestAnalyzeSharedCallReceiverCohesion(t *testing.T) {
	// methods that only touch self.db as a call receiver all share the
	// field, so every method pair is cohesive
	path := writeTempFile(t, "store.py", `
class UserStore:
    def __init__(self):
        self.db = Database()

    def add_user(self, user):
        self.db.insert(user)

    def remove_user(self, user):
        self.db.delete(user)
`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{path}})
	require.NoError(t, err)

	store := metricsByName(response)["UserStore"]
	assert.Equal(t, 0, store.Values[domain.MetricLCOM])
}

func TestAnalyzeJSONModel(t *testing.T) {
	path := writeTempFile(t, "model.json", `{
  "classes": [
    {
      "name": "Manager",
      "bases": ["Employee"],
      "fields": [{"name": "reports"}],
      "methods": [
        {
          "name": "notify",
          "signature": "notify/0",
          "field_accesses": [{"field": "reports"}],
          "calls": [{"receiver": "Mailer", "method": "send"}]
        }
      ]
    },
    {"name": "Employee", "methods": [{"name": "work", "signature": "work/0"}]}
  ]
}`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{path}})
	require.NoError(t, err)

	byName := metricsByName(response)
	manager := byName["Manager"]
	assert.Equal(t, 1, manager.Values[domain.MetricWMC])
	assert.Equal(t, 1, manager.Values[domain.MetricDIT])
	assert.Equal(t, 1, manager.Values[domain.MetricCBO], "Mailer call couples once")
	assert.Equal(t, 2, manager.Values[domain.MetricRFC], "notify plus Mailer.send")

	employee := byName["Employee"]
	assert.Equal(t, 1, employee.Values[domain.MetricNOC])
}

func TestAnalyzeCycleIsolation(t *testing.T) {
	path := writeTempFile(t, "model.json", `{
  "classes": [
    {"name": "A", "bases": ["B"], "methods": [{"name": "m", "signature": "m/0"}]},
    {"name": "B", "bases": ["A"]},
    {"name": "Healthy", "methods": [{"name": "m", "signature": "m/0"}]}
  ]
}`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{path}})
	require.NoError(t, err)

	byName := metricsByName(response)

	// DIT and NOC fail per class for cycle members, everything else computes
	a := byName["A"]
	require.NotEmpty(t, a.Errors)
	assert.Equal(t, domain.ErrCodeCycle, a.Errors[0].Kind)
	assert.NotContains(t, a.Values, domain.MetricDIT)
	assert.Contains(t, a.Values, domain.MetricWMC)
	assert.Equal(t, 1, a.Values[domain.MetricWMC])

	healthy := byName["Healthy"]
	assert.Empty(t, healthy.Errors)
	assert.Equal(t, 0, healthy.Values[domain.MetricDIT])

	assert.Equal(t, 2, response.Summary.ClassesInError)
}

func TestAnalyzeFileErrorsIsolated(t *testing.T) {
	good := writeTempFile(t, "good.py", `
class Fine:
    def run(self):
        pass
`)
	missing := filepath.Join(t.TempDir(), "missing.py")

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{missing, good}})
	require.NoError(t, err)

	assert.Len(t, response.Errors, 1)
	assert.Equal(t, 1, response.Summary.FilesAnalyzed)
	require.Len(t, response.Classes, 1)
	assert.Equal(t, "Fine", response.Classes[0].Name)
}

func TestAnalyzeDeterministicOrder(t *testing.T) {
	path := writeTempFile(t, "model.json", `{
  "classes": [
    {"name": "Zeta"},
    {"name": "Alpha"},
    {"name": "Mango"}
  ]
}`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{path}})
	require.NoError(t, err)

	names := []string{}
	for _, class := range response.Classes {
		names = append(names, class.Name)
	}
	assert.Equal(t, []string{"Alpha", "Mango", "Zeta"}, names)
}

func TestAnalyzeFindings(t *testing.T) {
	path := writeTempFile(t, "model.json", `{
  "classes": [
    {"name": "Busy", "methods": [
      {"name": "a"}, {"name": "b"}, {"name": "c"}
    ]}
  ]
}`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{
		Paths:      []string{path},
		Thresholds: map[domain.MetricKind]int{domain.MetricWMC: 2},
	})
	require.NoError(t, err)

	require.Len(t, response.Findings, 1)
	finding := response.Findings[0]
	assert.Equal(t, "Busy", finding.Class)
	assert.Equal(t, domain.MetricWMC, finding.Metric)
	assert.Equal(t, 3, finding.Value)
	assert.Equal(t, 2, finding.Threshold)

	byName := metricsByName(response)
	assert.Equal(t, domain.RiskLevelMedium, byName["Busy"].RiskLevel)
}

func TestAnalyzeSortByRisk(t *testing.T) {
	path := writeTempFile(t, "model.json", `{
  "classes": [
    {"name": "Calm", "methods": [{"name": "a"}]},
    {"name": "Wild", "methods": [
      {"name": "a"}, {"name": "b"}, {"name": "c"}, {"name": "d"}, {"name": "e"}
    ]}
  ]
}`)

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{
		Paths:      []string{path},
		SortBy:     domain.SortByRisk,
		Thresholds: map[domain.MetricKind]int{domain.MetricWMC: 2},
	})
	require.NoError(t, err)

	require.Len(t, response.Classes, 2)
	assert.Equal(t, "Wild", response.Classes[0].Name)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	path := writeTempFile(t, "empty.py", "x = 1\n")

	svc := NewCKService()
	response, err := svc.Analyze(context.Background(), domain.CKRequest{Paths: []string{path}})
	require.NoError(t, err)

	assert.Empty(t, response.Classes)
	assert.NotEmpty(t, response.Warnings)
}
