package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
	"github.com/gianfig/TecnicasReal/internal/inventory/usecase/command"
	"github.com/gianfig/TecnicasReal/internal/inventory/usecase/query"
)

// InventoryHandler handles HTTP requests for the inventory service
type InventoryHandler struct {
	createCategoriaHandler *command.CreateCategoriaHandler
	deleteCategoriaHandler *command.DeleteCategoriaHandler
	createProveedorHandler *command.CreateProveedorHandler
	deleteProveedorHandler *command.DeleteProveedorHandler
	createProductoHandler  *command.CreateProductoHandler
	updateProductoHandler  *command.UpdateProductoHandler
	deleteProductoHandler  *command.DeleteProductoHandler
	recordMovHandler       *command.RecordMovimientoHandler

	listCategoriasHandler  *query.ListCategoriasHandler
	listProveedoresHandler *query.ListProveedoresHandler
	listProductosHandler   *query.ListProductosHandler
	getProductoHandler     *query.GetProductoHandler
	listMovimientosHandler *query.ListMovimientosHandler
	reporteHandler         *query.ReporteStockBajoHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	lowStockGauge  prometheus.Gauge
	movCounter     *prometheus.CounterVec
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	categorias domain.CategoriaRepository,
	proveedores domain.ProveedorRepository,
	productos domain.ProductoRepository,
	ledger domain.LedgerRepository,
	publisher command.MovementPublisher,
) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to the inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	lowStockGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_service_low_stock_products",
			Help: "Number of active products at or below their minimum stock",
		},
	)

	movCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_movements_total",
			Help: "Total number of recorded stock movements",
		},
		[]string{"tipo"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(lowStockGauge)
	prometheus.MustRegister(movCounter)

	return &InventoryHandler{
		createCategoriaHandler: command.NewCreateCategoriaHandler(categorias),
		deleteCategoriaHandler: command.NewDeleteCategoriaHandler(categorias, productos),
		createProveedorHandler: command.NewCreateProveedorHandler(proveedores),
		deleteProveedorHandler: command.NewDeleteProveedorHandler(proveedores, productos),
		createProductoHandler:  command.NewCreateProductoHandler(productos, categorias, proveedores),
		updateProductoHandler:  command.NewUpdateProductoHandler(productos, categorias, proveedores),
		deleteProductoHandler:  command.NewDeleteProductoHandler(productos),
		recordMovHandler:       command.NewRecordMovimientoHandler(ledger, publisher),
		listCategoriasHandler:  query.NewListCategoriasHandler(categorias),
		listProveedoresHandler: query.NewListProveedoresHandler(proveedores),
		listProductosHandler:   query.NewListProductosHandler(productos),
		getProductoHandler:     query.NewGetProductoHandler(productos),
		listMovimientosHandler: query.NewListMovimientosHandler(ledger),
		reporteHandler:         query.NewReporteStockBajoHandler(productos),
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
		lowStockGauge:          lowStockGauge,
		movCounter:             movCounter,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Welcome handles GET /
func (h *InventoryHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"mensaje": "Bienvenido al Sistema de Inventario",
		"version": "1.0",
	})
}

// ListCategorias handles GET /categorias
func (h *InventoryHandler) ListCategorias(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.listCategoriasHandler.Handle()
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, categorias)
}

// CreateCategoria handles POST /categorias
func (h *InventoryHandler) CreateCategoria(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateCategoriaCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoria, err := h.createCategoriaHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, categoria)
}

// DeleteCategoria handles DELETE /categorias/{id}
func (h *InventoryHandler) DeleteCategoria(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteCategoriaHandler.Handle(id); err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"mensaje": "Categoria eliminada"})
}

// ListProveedores handles GET /proveedores
func (h *InventoryHandler) ListProveedores(w http.ResponseWriter, r *http.Request) {
	proveedores, err := h.listProveedoresHandler.Handle()
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, proveedores)
}

// CreateProveedor handles POST /proveedores
func (h *InventoryHandler) CreateProveedor(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProveedorCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proveedor, err := h.createProveedorHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, proveedor)
}

// DeleteProveedor handles DELETE /proveedores/{id}
func (h *InventoryHandler) DeleteProveedor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteProveedorHandler.Handle(id); err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"mensaje": "Proveedor eliminado"})
}

// ListProductos handles GET /productos
func (h *InventoryHandler) ListProductos(w http.ResponseWriter, r *http.Request) {
	productos, err := h.listProductosHandler.Handle()
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, productos)
}

// GetProducto handles GET /productos/{id}
func (h *InventoryHandler) GetProducto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	producto, err := h.getProductoHandler.Handle(id)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, producto)
}

// CreateProducto handles POST /productos
func (h *InventoryHandler) CreateProducto(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProductoCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	producto, err := h.createProductoHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, producto)
}

// UpdateProducto handles PUT /productos/{id}
func (h *InventoryHandler) UpdateProducto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd command.UpdateProductoCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.ID = id

	producto, err := h.updateProductoHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, producto)
}

// DeleteProducto handles DELETE /productos/{id}
func (h *InventoryHandler) DeleteProducto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteProductoHandler.Handle(id); err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"mensaje": "Producto desactivado"})
}

// ListMovimientos handles GET /movimientos with optional ?producto_id=
func (h *InventoryHandler) ListMovimientos(w http.ResponseWriter, r *http.Request) {
	var productoID uint
	if raw := r.URL.Query().Get("producto_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid producto_id")
			return
		}
		productoID = uint(parsed)
	}

	movimientos, err := h.listMovimientosHandler.Handle(r.Context(), productoID)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, movimientos)
}

// RecordMovimiento handles POST /movimientos
func (h *InventoryHandler) RecordMovimiento(w http.ResponseWriter, r *http.Request) {
	var cmd command.RecordMovimientoCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.recordMovHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.movCounter.WithLabelValues(result.Movimiento.TipoMovimiento).Inc()
	h.respondJSON(w, http.StatusCreated, result)
}

// ReporteStockBajo handles GET /reportes/stock-bajo
func (h *InventoryHandler) ReporteStockBajo(w http.ResponseWriter, r *http.Request) {
	reporte, err := h.reporteHandler.Handle()
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}

	h.lowStockGauge.Set(float64(len(reporte)))
	h.respondJSON(w, http.StatusOK, reporte)
}

// HealthCheck handles GET /health
func (h *InventoryHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// statusForError maps domain sentinel errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEnUso):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProductoNotFound),
		errors.Is(err, domain.ErrCategoriaNotFound),
		errors.Is(err, domain.ErrProveedorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *InventoryHandler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all inventory service routes. Reads are public;
// every write goes through AuthMiddleware.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.metricsMiddleware("/", h.Welcome)).Methods("GET")

	router.HandleFunc("/categorias", h.metricsMiddleware("/categorias", h.ListCategorias)).Methods("GET")
	router.HandleFunc("/categorias", h.metricsMiddleware("/categorias", AuthMiddleware(h.CreateCategoria))).Methods("POST")
	router.HandleFunc("/categorias/{id}", h.metricsMiddleware("/categorias/{id}", AuthMiddleware(h.DeleteCategoria))).Methods("DELETE")

	router.HandleFunc("/proveedores", h.metricsMiddleware("/proveedores", h.ListProveedores)).Methods("GET")
	router.HandleFunc("/proveedores", h.metricsMiddleware("/proveedores", AuthMiddleware(h.CreateProveedor))).Methods("POST")
	router.HandleFunc("/proveedores/{id}", h.metricsMiddleware("/proveedores/{id}", AuthMiddleware(h.DeleteProveedor))).Methods("DELETE")

	router.HandleFunc("/productos", h.metricsMiddleware("/productos", h.ListProductos)).Methods("GET")
	router.HandleFunc("/productos", h.metricsMiddleware("/productos", AuthMiddleware(h.CreateProducto))).Methods("POST")
	router.HandleFunc("/productos/{id}", h.metricsMiddleware("/productos/{id}", h.GetProducto)).Methods("GET")
	router.HandleFunc("/productos/{id}", h.metricsMiddleware("/productos/{id}", AuthMiddleware(h.UpdateProducto))).Methods("PUT")
	router.HandleFunc("/productos/{id}", h.metricsMiddleware("/productos/{id}", AuthMiddleware(h.DeleteProducto))).Methods("DELETE")

	router.HandleFunc("/movimientos", h.metricsMiddleware("/movimientos", h.ListMovimientos)).Methods("GET")
	router.HandleFunc("/movimientos", h.metricsMiddleware("/movimientos", AuthMiddleware(h.RecordMovimiento))).Methods("POST")

	router.HandleFunc("/reportes/stock-bajo", h.metricsMiddleware("/reportes/stock-bajo", h.ReporteStockBajo)).Methods("GET")
}

// RegisterHealthCheck registers the health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
