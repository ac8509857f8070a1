package http

import (
	"net/http"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Возвращает активные товары с поиском, фильтром по категории и сортировкой
//	@Tags			catalog
//	@Produce		json
//	@Param			q			query		string	false	"Поиск по названию и категории"
//	@Param			category	query		string	false	"Категория, All для всех"
//	@Param			sort		query		string	false	"newest | price-asc | price-desc"
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, ok := domain.ParseSortOption(q.Get("sort"))
	if !ok {
		WriteError(w, e.ErrInvalidSortOption)
		return
	}

	products, err := h.catalogUsecase.ListProducts(r.Context(), domain.FilterState{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Sort:     sort,
	})
	if err != nil {
		h.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductsResponse(products))
}

// getProduct
//
//	@Summary	Карточка товара
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := h.catalogUsecase.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(*product))
}

// listCategories
//
//	@Summary	Активные категории
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		CategoryResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list categories failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoriesResponse(categories))
}

// registerNewProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает новый товар в каталоге с изображениями
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name			formData	string	true	"Название товара"
//	@Param			category		formData	string	true	"Категория"
//	@Param			price			formData	number	true	"Цена"
//	@Param			description		formData	string	false	"Описание"
//	@Param			is_new			formData	bool	false	"Новинка"
//	@Param			stock_quantity	formData	int		false	"Остаток"
//	@Param			images			formData	file	true	"Изображения товара"
//	@Success		201				{object}	ProductResponse
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/admin/products [post]
func (h *CatalogHandler) registerNewProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	meta, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.catalogUsecase.RegisterNewProduct(r.Context(), &usecase.AddNewProductReq{
		Name:          meta.Name,
		Description:   meta.Description,
		CategoryName:  meta.CategoryName,
		Price:         meta.Price,
		IsNew:         meta.IsNew,
		StockQuantity: meta.StockQuantity,
		Images:        images,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(*product))
}

// archiveProduct
//
//	@Summary	Снять товар с витрины
//	@Tags		admin
//	@Param		id	path	int	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/products/{id} [delete]
func (h *CatalogHandler) archiveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.catalogUsecase.ArchiveProduct(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createCategory
//
//	@Summary	Создать категорию
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateCategoryRequest	true	"Категория"
//	@Success	201		{object}	CategoryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/admin/categories [post]
func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	category, err := h.catalogUsecase.CreateCategory(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CategoryResponse{ID: category.ID, Name: category.Name})
}

// archiveCategory
//
//	@Summary	Архивировать категорию
//	@Tags		admin
//	@Param		id	path	int	true	"ID категории"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/categories/{id} [delete]
func (h *CatalogHandler) archiveCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.catalogUsecase.ArchiveCategory(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
