package domain

const (
	AppStripe         = "Stripe"
	AppLuma           = "Luma"
	AppOpenCollective = "Open Collective"
)

var applicationNames = map[string]string{
	"ca_HB0JKrk4R6zGWt4fAD9M6iutRhuBdFqd": AppLuma,
	"ca_68FQ4jN0XMVhxpnk6gAptwvx90S9VYXF": AppOpenCollective,
}

// ResolveApplicationName maps a Stripe Connect application id to the platform
// that originated the charge. Unknown or absent ids are attributed to Stripe
// itself.
func ResolveApplicationName(applicationID string) string {
	if name, ok := applicationNames[applicationID]; ok {
		return name
	}
	return AppStripe
}
