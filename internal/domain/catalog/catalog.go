// Package catalog holds the static service catalog: which services the shop
// offers and the price and duration attached to each. Appointments copy these
// values at creation time, so editing the catalog never rewrites history.
package catalog

// ServiceKind identifies one of the offered services
type ServiceKind string

const (
	ServiceHaircut ServiceKind = "haircut"
	ServiceBeard   ServiceKind = "beard"
	ServiceCombo   ServiceKind = "combo"
)

// ErrUnknownService indicates a catalog lookup miss
type ErrUnknownService struct {
	Kind ServiceKind
}

func (e ErrUnknownService) Error() string {
	return "unknown service kind: " + string(e.Kind)
}

// ServiceSpec bundles the priced attributes of a service
type ServiceSpec struct {
	Price           int64 // Stored in centavos
	DurationMinutes int
}

// Catalog maps service kinds to their price and duration
type Catalog struct {
	services map[ServiceKind]ServiceSpec
}

// New builds a catalog from the given specs
func New(services map[ServiceKind]ServiceSpec) *Catalog {
	copied := make(map[ServiceKind]ServiceSpec, len(services))
	for kind, spec := range services {
		copied[kind] = spec
	}
	return &Catalog{services: copied}
}

// Default returns the shop's standing price list
func Default() *Catalog {
	return New(map[ServiceKind]ServiceSpec{
		ServiceHaircut: {Price: 3000, DurationMinutes: 30},
		ServiceBeard:   {Price: 2000, DurationMinutes: 20},
		ServiceCombo:   {Price: 4500, DurationMinutes: 60},
	})
}

// Lookup returns the ServiceSpec for the given service kind.
// Returns ErrUnknownService when the kind is not in the catalog.
func (c *Catalog) Lookup(kind ServiceKind) (ServiceSpec, error) {
	spec, ok := c.services[kind]
	if !ok {
		return ServiceSpec{}, ErrUnknownService{Kind: kind}
	}
	return spec, nil
}

// PriceOf returns the price of the given service kind in centavos
func (c *Catalog) PriceOf(kind ServiceKind) (int64, error) {
	spec, err := c.Lookup(kind)
	if err != nil {
		return 0, err
	}
	return spec.Price, nil
}

// DurationOf returns the duration of the given service kind in minutes
func (c *Catalog) DurationOf(kind ServiceKind) (int, error) {
	spec, err := c.Lookup(kind)
	if err != nil {
		return 0, err
	}
	return spec.DurationMinutes, nil
}
