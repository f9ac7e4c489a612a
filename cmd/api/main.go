package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/anush47/salaryapp-backend-go/internal/config"
	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	appHTTP "github.com/anush47/salaryapp-backend-go/internal/handler/http"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/database"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/epfref"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/jwt"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/storage"
	"github.com/anush47/salaryapp-backend-go/internal/repository/postgresql"
	documentService "github.com/anush47/salaryapp-backend-go/internal/service/document"
	generateService "github.com/anush47/salaryapp-backend-go/internal/service/generate"
	paymentService "github.com/anush47/salaryapp-backend-go/internal/service/payment"
	salaryService "github.com/anush47/salaryapp-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolSettings{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	purchaseRepo := postgresql.NewPurchaseRepository(db)
	periodLocker := postgresql.NewPeriodLocker(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	var references payment.ReferenceResolver
	if cfg.EPF.PortalBaseURL != "" {
		references = epfref.NewClient(cfg.EPF.PortalBaseURL)
	}

	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo, companyRepo, calendarRepo, purchaseRepo)
	paymentSvc := paymentService.NewPaymentService(paymentRepo, salaryRepo, companyRepo, purchaseRepo, periodLocker, references)
	documentSvc := documentService.NewDocumentService(salaryRepo, companyRepo, fileStorage)
	generateSvc := generateService.NewGenerateService(salarySvc, paymentSvc, documentSvc)

	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	paymentHandler := appHTTP.NewPaymentHandler(paymentSvc)
	generateHandler := appHTTP.NewGenerateHandler(generateSvc)

	router := appHTTP.NewRouter(JWTService, salaryHandler, paymentHandler, generateHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
