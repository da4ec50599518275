package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hybrid-sim/internal/api/models"
	"hybrid-sim/internal/model"
)

// TechnologyHandler describes the technology blocks a plant config accepts.
type TechnologyHandler struct{}

func NewTechnologyHandler() *TechnologyHandler {
	return &TechnologyHandler{}
}

var technologyCatalog = map[model.TechKind]models.TechnologyInfo{
	model.TechSolar: {
		Description: "Photovoltaic array driven by a clear-sky irradiance profile.",
		Parameters: []models.ParameterInfo{
			{Name: "system_capacity_kw", Type: "float", Description: "DC nameplate (kW)"},
			{Name: "losses", Type: "float", Description: "Fractional system losses", Default: 0.14},
			{Name: "installed_cost_per_kw", Type: "float", Description: "Installed cost ($/kW)", Default: 1044.0},
			{Name: "om_cost_per_kw_year", Type: "float", Description: "Fixed O&M ($/kW-yr)", Default: 18.0},
		},
	},
	model.TechWind: {
		Description: "Wind turbines following a cubic power curve.",
		Parameters: []models.ParameterInfo{
			{Name: "num_turbines", Type: "int", Description: "Number of turbines", Default: 1},
			{Name: "turbine_rating_kw", Type: "float", Description: "Turbine rating (kW)", Default: 5000.0},
			{Name: "cut_in_speed", Type: "float", Description: "Cut-in wind speed (m/s)", Default: 3.0},
			{Name: "rated_speed", Type: "float", Description: "Rated wind speed (m/s)", Default: 12.0},
			{Name: "cut_out_speed", Type: "float", Description: "Cut-out wind speed (m/s)", Default: 25.0},
			{Name: "installed_cost_per_kw", Type: "float", Description: "Installed cost ($/kW)", Default: 1300.0},
			{Name: "om_cost_per_kw_year", Type: "float", Description: "Fixed O&M ($/kW-yr)", Default: 42.0},
		},
	},
	model.TechBattery: {
		Description: "Storage that follows the site's desired schedule: it discharges into deficits and charges from surplus.",
		Parameters: []models.ParameterInfo{
			{Name: "system_capacity_kwh", Type: "float", Description: "Energy capacity (kWh)"},
			{Name: "system_capacity_kw", Type: "float", Description: "Power capacity (kW)"},
			{Name: "charge_efficiency", Type: "float", Description: "Charge efficiency (0..1]", Default: 0.95},
			{Name: "discharge_efficiency", Type: "float", Description: "Discharge efficiency (0..1]", Default: 0.95},
			{Name: "min_soc", Type: "float", Description: "Minimum state of charge", Default: 0.1},
			{Name: "max_soc", Type: "float", Description: "Maximum state of charge", Default: 0.9},
			{Name: "initial_soc", Type: "float", Description: "Initial state of charge (default: min_soc)"},
			{Name: "energy_cost_per_kwh", Type: "float", Description: "Energy cost ($/kWh)", Default: 300.0},
			{Name: "power_cost_per_kw", Type: "float", Description: "Power cost ($/kW)", Default: 250.0},
			{Name: "om_cost_per_kw_year", Type: "float", Description: "Fixed O&M ($/kW-yr)", Default: 10.0},
		},
	},
	model.TechWave: {
		Description: "Wave energy array. Costs come from cost_inputs; wave is excluded from plant capex and opex.",
		Parameters: []models.ParameterInfo{
			{Name: "num_devices", Type: "int", Description: "Number of devices"},
			{Name: "device_rating_kw", Type: "float", Description: "Device rating (kW)", Default: 286.0},
			{Name: "cost_inputs", Type: "mapping", Description: "reference_model_num (3, 5 or 6), water_depth, distance_to_shore, number_rows, devices_per_row, device_spacing, row_spacing, cabling_system_overbuild"},
		},
	},
	model.TechGrid: {
		Description: "Interconnect limit. Output above it is curtailed.",
		Parameters: []models.ParameterInfo{
			{Name: "interconnect_kw", Type: "float", Description: "Interconnect capacity (kW); defaults to total nameplate"},
		},
	},
}

// ListTechnologies handles GET /api/v1/technologies
func (h *TechnologyHandler) ListTechnologies(c *gin.Context) {
	techs := make([]models.TechnologyInfo, 0, len(model.KnownKinds))
	for _, k := range model.KnownKinds {
		info := technologyCatalog[k]
		info.Kind = k
		info.Generates = k.Generates()
		info.Costed = isCosted(k)
		techs = append(techs, info)
	}
	c.JSON(http.StatusOK, gin.H{"technologies": techs})
}

func isCosted(k model.TechKind) bool {
	for _, c := range model.CostedKinds {
		if c == k {
			return true
		}
	}
	return false
}
