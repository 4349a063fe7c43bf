package plan

// Tier is a commercial subscription level. The order of tiers matters for
// upgrade suggestions; see Catalog.NextTier.
type Tier string

const (
	TierTrial     Tier = "trial"
	Tier1         Tier = "tier-1"
	Tier2         Tier = "tier-2"
	Tier3         Tier = "tier-3"
	Tier4         Tier = "tier-4"
	TierUnlimited Tier = "unlimited"
)

func (t Tier) Valid() bool {
	switch t {
	case TierTrial, Tier1, Tier2, Tier3, Tier4, TierUnlimited:
		return true
	}
	return false
}

// Feature tags gate access to whole business modules. FeatureAll is the
// wildcard granting every feature regardless of tag.
type Feature string

const (
	FeatureAll        Feature = "*"
	FeatureGEDBase    Feature = "GED_BASE"
	FeatureNC         Feature = "NC"
	FeatureActions    Feature = "ACTIONS"
	FeatureAudit      Feature = "AUDIT"
	FeatureRisks      Feature = "RISKS"
	FeatureIndicators Feature = "INDICATORS"
	FeatureTraining   Feature = "TRAINING"
)

// Metric is a per-tenant countable resource class with a plan ceiling.
type Metric string

const (
	MetricProcesses       Metric = "process"
	MetricPilotUsers      Metric = "pilot-user"
	MetricQualityManagers Metric = "quality-manager-user"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricProcesses, MetricPilotUsers, MetricQualityManagers:
		return true
	}
	return false
}

// Unlimited disables the ceiling for a metric.
const Unlimited = -1

type Definition struct {
	Name     string
	Limits   map[Metric]int
	Features []Feature
}

// Catalog maps tiers to their definitions. It is built once at startup and
// never mutated afterwards; services receive it by injection.
type Catalog struct {
	defs  map[Tier]Definition
	order []Tier
}

func NewCatalog(defs map[Tier]Definition, order []Tier) *Catalog {
	return &Catalog{defs: defs, order: order}
}

// DefaultCatalog is the platform's commercial plan table.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Tier]Definition{
		TierTrial: {
			Name: "Trial",
			Limits: map[Metric]int{
				MetricProcesses:       10,
				MetricPilotUsers:      3,
				MetricQualityManagers: 1,
			},
			Features: []Feature{FeatureAll},
		},
		Tier1: {
			Name: "Essential",
			Limits: map[Metric]int{
				MetricProcesses:       10,
				MetricPilotUsers:      3,
				MetricQualityManagers: 1,
			},
			Features: []Feature{FeatureGEDBase, FeatureNC, FeatureActions},
		},
		Tier2: {
			Name: "Standard",
			Limits: map[Metric]int{
				MetricProcesses:       25,
				MetricPilotUsers:      10,
				MetricQualityManagers: 2,
			},
			Features: []Feature{FeatureGEDBase, FeatureNC, FeatureActions, FeatureAudit, FeatureIndicators},
		},
		Tier3: {
			Name: "Advanced",
			Limits: map[Metric]int{
				MetricProcesses:       50,
				MetricPilotUsers:      25,
				MetricQualityManagers: 3,
			},
			Features: []Feature{FeatureGEDBase, FeatureNC, FeatureActions, FeatureAudit, FeatureIndicators, FeatureRisks, FeatureTraining},
		},
		Tier4: {
			Name: "Premium",
			Limits: map[Metric]int{
				MetricProcesses:       100,
				MetricPilotUsers:      50,
				MetricQualityManagers: 5,
			},
			Features: []Feature{FeatureGEDBase, FeatureNC, FeatureActions, FeatureAudit, FeatureIndicators, FeatureRisks, FeatureTraining},
		},
		TierUnlimited: {
			Name: "Unlimited",
			Limits: map[Metric]int{
				MetricProcesses:       Unlimited,
				MetricPilotUsers:      Unlimited,
				MetricQualityManagers: Unlimited,
			},
			Features: []Feature{FeatureAll},
		},
	}, []Tier{TierTrial, Tier1, Tier2, Tier3, Tier4, TierUnlimited})
}

func (c *Catalog) Definition(tier Tier) (Definition, bool) {
	def, ok := c.defs[tier]
	return def, ok
}

// HasFeature reports whether the tier includes the feature, honoring the
// wildcard tier.
func (c *Catalog) HasFeature(tier Tier, feature Feature) bool {
	def, ok := c.defs[tier]
	if !ok {
		return false
	}
	for _, f := range def.Features {
		if f == FeatureAll || f == feature {
			return true
		}
	}
	return false
}

// Features returns the tier's feature tags; the wildcard expands to nothing
// special here, callers display it as "all features".
func (c *Catalog) Features(tier Tier) []Feature {
	def, ok := c.defs[tier]
	if !ok {
		return nil
	}
	out := make([]Feature, len(def.Features))
	copy(out, def.Features)
	return out
}

// Limit returns the tier's ceiling for a metric. Unlimited is reported as
// (Unlimited, true).
func (c *Catalog) Limit(tier Tier, metric Metric) (int, bool) {
	def, ok := c.defs[tier]
	if !ok {
		return 0, false
	}
	limit, ok := def.Limits[metric]
	return limit, ok
}

// NextTier is the tier immediately above the given one in commercial order,
// used for upgrade suggestions. The top tier has no successor.
func (c *Catalog) NextTier(tier Tier) (Tier, bool) {
	for i, t := range c.order {
		if t == tier {
			if i+1 < len(c.order) {
				return c.order[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

func (c *Catalog) Tiers() []Tier {
	out := make([]Tier, len(c.order))
	copy(out, c.order)
	return out
}
