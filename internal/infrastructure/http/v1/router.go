package v1

import (
	"github.com/gin-gonic/gin"

	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tx"
	"tradebooks/internal/domain/catalogs/asset"
	"tradebooks/internal/domain/catalogs/bankaccount"
	"tradebooks/internal/domain/catalogs/branch"
	"tradebooks/internal/domain/catalogs/company"
	"tradebooks/internal/domain/catalogs/customer"
	"tradebooks/internal/domain/catalogs/employee"
	"tradebooks/internal/domain/catalogs/product"
	"tradebooks/internal/domain/catalogs/supplier"
	"tradebooks/internal/domain/catalogs/unit"
	"tradebooks/internal/domain/documents/banktransaction"
	"tradebooks/internal/domain/documents/booking"
	"tradebooks/internal/domain/documents/damage"
	"tradebooks/internal/domain/documents/payment"
	"tradebooks/internal/domain/documents/productdelivery"
	"tradebooks/internal/domain/documents/productreceive"
	"tradebooks/internal/domain/documents/purchase"
	"tradebooks/internal/domain/documents/salereturn"
	"tradebooks/internal/domain/documents/sales"
	"tradebooks/internal/domain/registers/stock"
	"tradebooks/internal/infrastructure/http/v1/handlers"
	"tradebooks/internal/infrastructure/http/v1/middleware"
	"tradebooks/internal/infrastructure/storage/postgres"
	"tradebooks/internal/infrastructure/storage/postgres/catalog_repo"
	"tradebooks/internal/infrastructure/storage/postgres/document_repo"
	"tradebooks/internal/infrastructure/storage/postgres/register_repo"
	"tradebooks/internal/infrastructure/storage/postgres/sequence_repo"
	"tradebooks/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the shared database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager is injected into every request context
	TxManager tx.Manager

	// Logger for request logging
	Logger *logger.Logger

	// MalformedCodePolicy decides how the code generator treats unparsable
	// suffixes of previously issued codes
	MalformedCodePolicy sequence.MalformedCodePolicy
}

// NewRouter creates and configures the Gin router. Repositories and services
// are created once; the transaction manager travels in the request context.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no identity required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.TxManager(cfg.TxManager))
	api.Use(middleware.Identity())

	generator := sequence.NewService(sequence_repo.NewSource(), cfg.MalformedCodePolicy)

	// --- Catalog services ---
	companySvc := company.NewService(catalog_repo.NewCompanyRepo())
	branchSvc := branch.NewService(catalog_repo.NewBranchRepo(), generator)

	// One scope resolver decides branch-vs-global numbering for everyone.
	scopes := company.NewScopeResolver(companySvc, branchSvc)

	unitSvc := unit.NewService(catalog_repo.NewUnitRepo(), generator)
	productSvc := product.NewService(catalog_repo.NewProductRepo(), unitSvc, generator)
	supplierSvc := supplier.NewService(catalog_repo.NewSupplierRepo(), generator)
	customerSvc := customer.NewService(catalog_repo.NewCustomerRepo(), generator)
	employeeSvc := employee.NewService(catalog_repo.NewEmployeeRepo(), generator, scopes)
	assetSvc := asset.NewService(catalog_repo.NewAssetRepo(), generator, scopes)
	bankAccountSvc := bankaccount.NewService(catalog_repo.NewBankAccountRepo(), generator)

	// --- Stock register ---
	stockSvc := stock.NewService(register_repo.NewStockRepo())

	// --- Document services ---
	purchaseSvc := purchase.NewService(document_repo.NewPurchaseRepo(), stockSvc, unitSvc, generator, scopes)
	receiveSvc := productreceive.NewService(document_repo.NewProductReceiveRepo(), stockSvc, unitSvc, generator, scopes)
	salesSvc := sales.NewService(document_repo.NewSalesRepo(), stockSvc, unitSvc, generator, scopes)
	saleReturnSvc := salereturn.NewService(document_repo.NewSaleReturnRepo(), stockSvc, unitSvc, generator, scopes)
	damageSvc := damage.NewService(document_repo.NewDamageRepo(), stockSvc, unitSvc, generator, scopes)
	bookingSvc := booking.NewService(document_repo.NewBookingRepo(), generator, scopes)
	deliverySvc := productdelivery.NewService(document_repo.NewProductDeliveryRepo(), stockSvc, unitSvc, generator, scopes)
	bankTxSvc := banktransaction.NewService(document_repo.NewBankTransactionRepo(), bankAccountSvc, generator, scopes)
	paymentSvc := payment.NewService(document_repo.NewPaymentRepo(), generator, scopes)

	base := handlers.NewBaseHandler()

	// --- Catalog routes ---
	catalogs := api.Group("/catalog")
	{
		companyHandler := handlers.NewCompanyHandler(base, companySvc)
		companies := catalogs.Group("/companies")
		companies.GET("/current", companyHandler.GetCurrent)
		RegisterCatalogRoutes(companies, companyHandler)

		RegisterCatalogRoutes(catalogs.Group("/branches"),
			handlers.NewCatalogHandler[*branch.Branch](base, branchSvc, func() *branch.Branch { return &branch.Branch{} }))

		unitHandler := handlers.NewUnitHandler(base, unitSvc)
		units := catalogs.Group("/units")
		units.GET("/:id/conversions", unitHandler.ListConversions)
		units.POST("/:id/conversions", unitHandler.AddConversion)
		RegisterCatalogRoutes(units, unitHandler)

		RegisterCatalogRoutes(catalogs.Group("/products"),
			handlers.NewCatalogHandler[*product.Product](base, productSvc, func() *product.Product { return &product.Product{} }))
		RegisterCatalogRoutes(catalogs.Group("/suppliers"),
			handlers.NewCatalogHandler[*supplier.Supplier](base, supplierSvc, func() *supplier.Supplier { return &supplier.Supplier{} }))
		RegisterCatalogRoutes(catalogs.Group("/customers"),
			handlers.NewCatalogHandler[*customer.Customer](base, customerSvc, func() *customer.Customer { return &customer.Customer{} }))
		RegisterCatalogRoutes(catalogs.Group("/employees"),
			handlers.NewCatalogHandler[*employee.Employee](base, employeeSvc, func() *employee.Employee { return &employee.Employee{} }))
		RegisterCatalogRoutes(catalogs.Group("/assets"),
			handlers.NewCatalogHandler[*asset.Asset](base, assetSvc, func() *asset.Asset { return &asset.Asset{} }))
		RegisterCatalogRoutes(catalogs.Group("/bank-accounts"),
			handlers.NewCatalogHandler[*bankaccount.BankAccount](base, bankAccountSvc, func() *bankaccount.BankAccount { return &bankaccount.BankAccount{} }))
	}

	// --- Document routes ---
	documents := api.Group("/document")
	{
		RegisterDocumentRoutes(documents.Group("/purchases"),
			handlers.NewDocumentHandler[*purchase.Purchase](base, purchaseSvc, func() *purchase.Purchase { return &purchase.Purchase{} }))
		RegisterDocumentRoutes(documents.Group("/product-receives"),
			handlers.NewDocumentHandler[*productreceive.ProductReceive](base, receiveSvc, func() *productreceive.ProductReceive { return &productreceive.ProductReceive{} }))
		RegisterDocumentRoutes(documents.Group("/sales"),
			handlers.NewDocumentHandler[*sales.Sales](base, salesSvc, func() *sales.Sales { return &sales.Sales{} }))
		RegisterDocumentRoutes(documents.Group("/sale-returns"),
			handlers.NewDocumentHandler[*salereturn.SaleReturn](base, saleReturnSvc, func() *salereturn.SaleReturn { return &salereturn.SaleReturn{} }))
		RegisterDocumentRoutes(documents.Group("/damages"),
			handlers.NewDocumentHandler[*damage.Damage](base, damageSvc, func() *damage.Damage { return &damage.Damage{} }))
		RegisterDocumentRoutes(documents.Group("/bookings"),
			handlers.NewDocumentHandler[*booking.Booking](base, bookingSvc, func() *booking.Booking { return &booking.Booking{} }))
		RegisterDocumentRoutes(documents.Group("/product-deliveries"),
			handlers.NewDocumentHandler[*productdelivery.ProductDelivery](base, deliverySvc, func() *productdelivery.ProductDelivery { return &productdelivery.ProductDelivery{} }))

		// Bank transactions register the full set; the service rejects edits.
		RegisterDocumentRoutes(documents.Group("/bank-transactions"),
			handlers.NewDocumentHandler[*banktransaction.BankTransaction](base, bankTxSvc, func() *banktransaction.BankTransaction { return &banktransaction.BankTransaction{} }))

		paymentHandler := handlers.NewPaymentHandler(base, paymentSvc)
		payments := documents.Group("/payments")
		payments.POST("/:id/archive", paymentHandler.Archive)
		payments.POST("/:id/unarchive", paymentHandler.Unarchive)
		RegisterDocumentRoutes(payments, paymentHandler)
	}

	// --- Register routes ---
	stockHandler := handlers.NewStockHandler(base, stockSvc)
	stockGroup := api.Group("/register/stock")
	{
		stockGroup.GET("", stockHandler.ByBranch)
		stockGroup.GET("/quantity", stockHandler.Quantity)
		stockGroup.GET("/deliverable", stockHandler.Deliverable)
	}

	return router
}
