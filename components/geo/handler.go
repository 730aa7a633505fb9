package geo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

type entityResponse struct {
	Data any `json:"data"`
}

// CitiesHandler serves ranked city search results as select options.
func CitiesHandler(fns ...OptionFn) http.Handler {
	return CitiesHandlerWithOptions(NewOptions(fns...))
}

// RegionsHandler serves ranked region search results as select options.
func RegionsHandler(fns ...OptionFn) http.Handler {
	return RegionsHandlerWithOptions(NewOptions(fns...))
}

func CitiesHandlerWithOptions(opts Options) http.Handler {
	return searchHandler(opts, func(d *Dataset, query string, limit int, opts Options) []Option {
		return CityOptions(SearchCities(d, query, limit, opts))
	})
}

func RegionsHandlerWithOptions(opts Options) http.Handler {
	return searchHandler(opts, func(d *Dataset, query string, limit int, opts Options) []Option {
		return RegionOptions(SearchRegions(d, query, limit, opts))
	})
}

// LookupHandler resolves a single city (by name, IBGE code or CEP) or, when
// kind=region, a single region. A miss answers 404.
func LookupHandler(fns ...OptionFn) http.Handler {
	return LookupHandlerWithOptions(NewOptions(fns...))
}

func LookupHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return guarded(opts, func(w http.ResponseWriter, r *http.Request, dataset *Dataset) {
		query := r.URL.Query().Get(opts.SearchParam)

		var (
			entity any
			found  bool
		)
		if r.URL.Query().Get("kind") == "region" {
			entity, found = dataset.FindRegion(query)
		} else {
			entity, found = dataset.FindCity(query)
		}
		if !found {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		writeJSON(w, r, entityResponse{Data: entity})
	})
}

type searchFunc func(d *Dataset, query string, limit int, opts Options) []Option

func searchHandler(opts Options, search searchFunc) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return guarded(opts, func(w http.ResponseWriter, r *http.Request, dataset *Dataset) {
		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := search(dataset, query, limit, opts)
		if results == nil {
			results = []Option{}
		}
		writeJSON(w, r, optionsResponse{Data: results})
	})
}

func guarded(opts Options, next func(http.ResponseWriter, *http.Request, *Dataset)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		dataset := opts.Dataset
		if dataset == nil {
			loaded, err := DefaultDataset()
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			dataset = loaded
		}
		next(w, r, dataset)
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
