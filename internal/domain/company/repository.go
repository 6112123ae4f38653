package company

import "context"

type SettingsRepository interface {
	// GetSettings returns a tenant's engine settings. Implementations fall
	// back to configured defaults when the tenant has no row.
	GetSettings(ctx context.Context, companyID string) (Settings, error)

	// ListCompanyIDs returns every active tenant, for the nightly sweep.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
