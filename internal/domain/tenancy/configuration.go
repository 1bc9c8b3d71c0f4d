package tenancy

import (
	"strconv"
	"strings"
)

// TenantType is the coarse category a deployment belongs to
type TenantType int

const (
	// TenantTypeStandard has full employee access
	TenantTypeStandard TenantType = iota + 1
	// TenantTypeRestricted sees managers only
	TenantTypeRestricted
	// TenantTypeEnterprise has advanced features
	TenantTypeEnterprise
	// TenantTypeTrial has limited features
	TenantTypeTrial
)

var tenantTypeNames = map[TenantType]string{
	TenantTypeStandard:   "Standard",
	TenantTypeRestricted: "Restricted",
	TenantTypeEnterprise: "Enterprise",
	TenantTypeTrial:      "Trial",
}

func (t TenantType) String() string {
	if name, ok := tenantTypeNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// IsValid returns true if t is a known tenant type
func (t TenantType) IsValid() bool {
	_, ok := tenantTypeNames[t]
	return ok
}

// ParseTenantType accepts a type name (case-insensitive) or its number
func ParseTenantType(raw string) (TenantType, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		t := TenantType(n)
		return t, t.IsValid()
	}
	for t, name := range tenantTypeNames {
		if strings.EqualFold(name, raw) {
			return t, true
		}
	}
	return 0, false
}

// DefaultInstanceName is used when a deployment does not name itself
const DefaultInstanceName = "Default"

// TenantConfiguration is the static per-deployment descriptor read on every
// customization decision. It is set once at startup and never mutated.
type TenantConfiguration struct {
	Type         TenantType
	InstanceName string
	Description  string
	CustomRules  map[string]any
	FeatureFlags map[string]bool
}

// DefaultTenantConfiguration returns a Standard configuration named "Default"
func DefaultTenantConfiguration() TenantConfiguration {
	return TenantConfiguration{
		Type:         TenantTypeStandard,
		InstanceName: DefaultInstanceName,
	}
}

// WithDefaults fills a zero type or empty instance name
func (c TenantConfiguration) WithDefaults() TenantConfiguration {
	if c.Type == 0 {
		c.Type = TenantTypeStandard
	}
	if strings.TrimSpace(c.InstanceName) == "" {
		c.InstanceName = DefaultInstanceName
	}
	return c
}

// FeatureEnabled reports the flag value; unknown flags are disabled
func (c TenantConfiguration) FeatureEnabled(key string) bool {
	return c.FeatureFlags[key]
}

// CustomRule looks up an opaque rule value
func (c TenantConfiguration) CustomRule(key string) (any, bool) {
	v, ok := c.CustomRules[key]
	return v, ok
}
