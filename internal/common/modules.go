package common

// Module tags selectable for export and recorded in envelope metadata.
const (
	ModuleProfile   = "profile"
	ModuleWorkouts  = "workouts"
	ModuleFinance   = "finance"
	ModuleNutrition = "nutrition"
	ModuleFamily    = "family"
	ModuleCatalog   = "catalog"
)

// AllModules returns every module tag in a stable order.
func AllModules() []string {
	return []string{
		ModuleProfile,
		ModuleWorkouts,
		ModuleFinance,
		ModuleNutrition,
		ModuleFamily,
		ModuleCatalog,
	}
}

// KnownModule reports whether tag names one of the exportable modules.
func KnownModule(tag string) bool {
	for _, m := range AllModules() {
		if m == tag {
			return true
		}
	}
	return false
}
