package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gortyum/feriadigital/api/middleware"
	"github.com/Gortyum/feriadigital/api/responses"
	"github.com/Gortyum/feriadigital/api/validators"
	"github.com/Gortyum/feriadigital/internal/categories"
	"github.com/Gortyum/feriadigital/internal/products"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/session"
)

const myProductsPath = "/mis-productos"

// ProductSearch renders the catalog filtered by name, category, and fair.
func ProductSearch(svc products.Service, cats *categories.Repository, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "categoria")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		fairID, err := validators.ParseQueryUUID(r, "feria")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := products.SearchInput{
			Query:      validators.SanitizeString(r.URL.Query().Get("q"), 100),
			CategoryID: categoryID,
			FairID:     fairID,
		}

		listed, err := svc.Search(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data := map[string]interface{}{
			"productos": listed,
			"busqueda":  input.Query,
		}
		if cats != nil {
			if options, err := cats.List(r.Context()); err == nil {
				data["categorias"] = options
			}
		}

		writeRender(w, r, sessions, logg, data)
	}
}

// ProductDetail renders one product with its stall and fair.
func ProductDetail(svc products.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeRender(w, r, sessions, logg, map[string]interface{}{"producto": product})
	}
}

// MyProducts renders the vendor's catalog.
func MyProducts(svc products.Service, cats *categories.Repository, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		listed, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data := map[string]interface{}{"productos": listed}
		if cats != nil {
			if options, err := cats.List(r.Context()); err == nil {
				data["categorias"] = options
			}
		}

		writeRender(w, r, sessions, logg, data)
	}
}

// ProductCreate adds a product to the vendor's stall.
func ProductCreate(svc products.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload products.CreateProductInput
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		if _, err := svc.Create(r.Context(), userID, payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myProductsPath, session.FlashSuccess, "Producto agregado exitosamente")
	}
}

// ProductUpdate edits one of the vendor's own products.
func ProductUpdate(svc products.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"))
		if err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		var payload products.UpdateProductInput
		if err := validators.DecodeBody(r, &payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		if _, err := svc.Update(r.Context(), userID, productID, payload); err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myProductsPath, session.FlashSuccess, "Producto actualizado")
	}
}

// ProductDelete removes one of the vendor's own products. Products with
// reservations stay put.
func ProductDelete(svc products.Service, sessions Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"))
		if err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		if err := svc.Delete(r.Context(), userID, productID); err != nil {
			failRedirect(w, r, sessions, logg, err, myProductsPath)
			return
		}

		redirectWithFlash(w, r, sessions, logg, myProductsPath, session.FlashSuccess, "Producto eliminado")
	}
}
