package errors

import "net/http"

var (
	ErrDatasetUnavailable = New(
		"DATASET_UNAVAILABLE",
		"Dataset is not loaded, views are disabled",
		http.StatusServiceUnavailable,
	)

	ErrDatasetLoadFailed = New(
		"DATASET_LOAD_FAILED",
		"Failed to load dataset from source",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidBinWidth = New(
		"INVALID_BIN_WIDTH",
		"Bin width must be zero or positive",
		http.StatusBadRequest,
	)

	ErrExportFailed = New(
		"EXPORT_FAILED",
		"Failed to export records",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
