package cmd

import (
	"bytes"
	"testing"

	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReport(t *testing.T) {
	report := &other.DashboardReport{
		TotalRevenue:    380000,
		SuccessRevenue:  380000,
		TotalOrders:     1,
		TotalProducts:   3,
		TotalCategories: 1,
		TotalUsers:      2,
		StatusBreakdown: services.BuildStatusBreakdown([]other.StatusCountRow{{Status: "SUCCESS", Count: 1}}),
		TopProducts: []other.TopProduct{
			{Name: "Seragam", Revenue: 300000, Qty: 2},
			{Name: "Buku Cerita", Revenue: 80000, Qty: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, 30, report))
	out := buf.String()

	assert.Contains(t, out, "Laporan 30 hari terakhir")
	assert.Contains(t, out, "Rp 380.000")
	assert.Contains(t, out, "Rp 300.000")
	assert.Contains(t, out, "Seragam")
	assert.Contains(t, out, "Buku Cerita")
	for _, label := range []string{"Menunggu", "Dihubungi", "Berhasil", "Dibatalkan"} {
		assert.Contains(t, out, label)
	}
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	names := make([]string, 0, len(cmd.Commands))
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"migrate", "seed", "generate-keys", "create-admin", "report"}, names)
}
