// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `make mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/catalog.go -destination=catalog_client_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/settings.go -destination=settings_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/snapshot.go -destination=snapshot_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/sync.go -destination=sync_services_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/runs.go -destination=run_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
