package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/database"
	"github.com/atelierhq/atelier/internal/employee"
	employeeStore "github.com/atelierhq/atelier/internal/employee/store"
	"github.com/atelierhq/atelier/internal/finance"
	financeStore "github.com/atelierhq/atelier/internal/finance/store"
	atelierHttp "github.com/atelierhq/atelier/internal/http"
	employeeHandler "github.com/atelierhq/atelier/internal/http/employee"
	importHandler "github.com/atelierhq/atelier/internal/http/importcsv"
	invoiceHandler "github.com/atelierhq/atelier/internal/http/invoice"
	"github.com/atelierhq/atelier/internal/http/middleware"
	projectHandler "github.com/atelierhq/atelier/internal/http/project"
	taskHandler "github.com/atelierhq/atelier/internal/http/task"
	txHandler "github.com/atelierhq/atelier/internal/http/transaction"
	"github.com/atelierhq/atelier/internal/importer"
	"github.com/atelierhq/atelier/internal/integrity"
	integrityStore "github.com/atelierhq/atelier/internal/integrity/store"
	"github.com/atelierhq/atelier/internal/invoice"
	invoiceStore "github.com/atelierhq/atelier/internal/invoice/store"
	"github.com/atelierhq/atelier/internal/payment"
	paymentStore "github.com/atelierhq/atelier/internal/payment/store"
	"github.com/atelierhq/atelier/internal/project"
	projectStore "github.com/atelierhq/atelier/internal/project/store"
	"github.com/atelierhq/atelier/internal/sequence"
	sequenceStore "github.com/atelierhq/atelier/internal/sequence/store"
	"github.com/atelierhq/atelier/internal/task"
	taskStore "github.com/atelierhq/atelier/internal/task/store"
	"github.com/atelierhq/atelier/internal/transaction"
	txStore "github.com/atelierhq/atelier/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpen:     cfg.DB.MaxOpenConns,
		MaxIdle:     cfg.DB.MaxIdleConns,
		MaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		store          = integrityStore.New(db)
		resolver       = integrity.NewResolver(store)
		codes          = sequence.NewAllocator(sequenceStore.New(db))
		integrityMgr   = integrity.NewManager(store, middleware.RoleAuthorizer{})
		financeService = finance.NewService(financeStore.New(db))
		paymentService = payment.NewService(paymentStore.New(db))
	)

	var (
		projectService     = project.NewService(projectStore.New(db), codes)
		employeeService    = employee.NewService(employeeStore.New(db), codes)
		taskService        = task.NewService(taskStore.New(db), resolver)
		invoiceService     = invoice.NewService(invoiceStore.New(db), resolver)
		transactionService = transaction.NewService(txStore.New(db), resolver)
		importService      = importer.NewService()
	)

	var (
		projectH     = projectHandler.NewHandler(projectService, financeService, integrityMgr)
		employeeH    = employeeHandler.NewHandler(employeeService, integrityMgr)
		taskH        = taskHandler.NewHandler(taskService, paymentService, integrityMgr)
		invoiceH     = invoiceHandler.NewHandler(invoiceService, paymentService, integrityMgr)
		transactionH = txHandler.NewHandler(transactionService, integrityMgr)
		importH      = importHandler.NewHandler(importService, transactionService)
	)

	router := atelierHttp.New(cfg.Auth.Secret, projectH, employeeH, taskH, invoiceH, transactionH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
