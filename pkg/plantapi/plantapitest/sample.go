package plantapitest

import "github.com/grovetools/plantview/pkg/plant"

// SampleDataset returns a small plant in the shape the server reports.
func SampleDataset() *plant.Dataset {
	return plant.NewDataset().
		Set(plant.CategoryOperation, "Reactor 1", plant.NewRecord("Online").
			Set("power_output_mw", 950.0).
			Set("temp_c", 320.0)).
		Set(plant.CategoryOperation, "Reactor 3", plant.NewRecord("Standby").
			Set("power_output_mw", 0.0).
			Set("temp_c", 45.0)).
		Set(plant.CategoryOperation, "Turbine 1", plant.NewRecord("Online").
			Set("rpm", 1800.0)).
		Set(plant.CategorySafety, "Safety Gen 1", plant.NewRecord("Standby").
			Set("fuel_level", "100%").
			Set("last_test", "2025-08-25")).
		Set(plant.CategoryEnvironmental, "Waste Treatment Plant", plant.NewRecord("Operational").
			Set("processing_load", "75%"))
}
