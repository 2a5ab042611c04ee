package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/Rakhulsr/go-kindergarten/app/configs"
	"github.com/Rakhulsr/go-kindergarten/app/db/seeders"
	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/migrations"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/Rakhulsr/go-kindergarten/app/services"
	"github.com/Rakhulsr/go-kindergarten/app/utils/format"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "kindergarten",
		Usage: "Kindergarten site and admin back office",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill an empty database with demo categories, products and orders",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "orders", Value: 120, Usage: "number of orders to create"},
					&cli.IntFlag{Name: "days", Value: 90, Usage: "spread orders over the last N days"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					opts := seeders.DefaultOptions()
					opts.Orders = int(c.Int("orders"))
					opts.Days = int(c.Int("days"))
					if err := seeders.DBSeed(db, opts); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "session_keys.txt", Usage: "file the keys are written to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create a back office user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "role", Value: models.RoleAdmin},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					input := services.CreateUserInput{
						Name:     c.String("name"),
						Email:    c.String("email"),
						Password: c.String("password"),
						Role:     c.String("role"),
					}
					if err := helpers.NewValidator().Struct(&input); err != nil {
						return fmt.Errorf("invalid user: %v", helpers.FromValidation(err).Details)
					}

					user, err := services.NewUserService(repositories.NewUserRepository(db)).Create(ctx, input)
					if err != nil {
						return err
					}
					log.Printf("✅ User %s (%s) created with role %s", user.Email, user.ID, user.Role)
					return nil
				},
			},
			{
				Name:  "report",
				Usage: "Print the dashboard report for the last N days",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "days", Value: services.DefaultReportDays},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					days := helpers.ParseDays(strconv.Itoa(int(c.Int("days"))), services.DefaultReportDays)
					svc := services.NewReportService(repositories.NewReportRepository(db), configs.ReportLocation())
					report, err := svc.DashboardReport(ctx, days)
					if err != nil {
						return err
					}
					return PrintReport(os.Stdout, days, report)
				},
			},
		},
	}
}

// PrintReport writes the dashboard report as plain tables.
func PrintReport(w io.Writer, days int, report *other.DashboardReport) error {
	fmt.Fprintf(w, "Laporan %d hari terakhir\n\n", days)

	summary := tablewriter.NewWriter(w)
	summary.Header("Ringkasan", "Nilai")
	if err := summary.Bulk([][]string{
		{"Total pendapatan", format.FormatRupiah(report.TotalRevenue)},
		{"Pendapatan berhasil", format.FormatRupiah(report.SuccessRevenue)},
		{"Pesanan", strconv.FormatInt(report.TotalOrders, 10)},
		{"Produk aktif", strconv.FormatInt(report.TotalProducts, 10)},
		{"Kategori aktif", strconv.FormatInt(report.TotalCategories, 10)},
		{"Pengguna", strconv.FormatInt(report.TotalUsers, 10)},
	}); err != nil {
		return err
	}
	if err := summary.Render(); err != nil {
		return err
	}

	statuses := tablewriter.NewWriter(w)
	statuses.Header("Status", "Label", "Jumlah")
	rows := make([][]string, 0, len(report.StatusBreakdown))
	for _, s := range report.StatusBreakdown {
		rows = append(rows, []string{s.Status, s.Label, strconv.FormatInt(s.Count, 10)})
	}
	if err := statuses.Bulk(rows); err != nil {
		return err
	}
	if err := statuses.Render(); err != nil {
		return err
	}

	top := tablewriter.NewWriter(w)
	top.Header("Produk", "Qty", "Pendapatan")
	rows = make([][]string, 0, len(report.TopProducts))
	for _, p := range report.TopProducts {
		rows = append(rows, []string{p.Name, strconv.FormatInt(p.Qty, 10), format.FormatRupiah(p.Revenue)})
	}
	if err := top.Bulk(rows); err != nil {
		return err
	}
	return top.Render()
}

func RunCli() {
	if err := NewCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
