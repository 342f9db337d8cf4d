package cli

import (
	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/spf13/cobra"
)

// careFlags are the care attribute flags shared by plant add, plant edit and
// species show.
type careFlags struct {
	proximity string
	pot       string
	substrate string
	humidity  string
}

func (f *careFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.proximity, "proximity", "", "Distance from the window: near, medium, far")
	cmd.Flags().StringVar(&f.pot, "pot", "", "Pot material: terracotta, plastic")
	cmd.Flags().StringVar(&f.substrate, "substrate", "", "Substrate weight: light, standard, heavy")
	cmd.Flags().StringVar(&f.humidity, "humidity", "", "Air humidity: standard, low")
}

// apply overlays the flags that were given onto base.
func (f *careFlags) apply(base domain.CareAttributes) (domain.CareAttributes, error) {
	care := base
	var err error
	if f.proximity != "" {
		if care.Proximity, err = domain.ParseProximity(f.proximity); err != nil {
			return care, err
		}
	}
	if f.pot != "" {
		if care.PotMaterial, err = domain.ParsePotMaterial(f.pot); err != nil {
			return care, err
		}
	}
	if f.substrate != "" {
		if care.Substrate, err = domain.ParseSubstrate(f.substrate); err != nil {
			return care, err
		}
	}
	if f.humidity != "" {
		if care.Humidity, err = domain.ParseHumidity(f.humidity); err != nil {
			return care, err
		}
	}
	return care, nil
}

// patch fills the care fields of a plant patch from the flags that were given.
func (f *careFlags) patch(p *domain.PlantPatch) error {
	care, err := f.apply(domain.CareAttributes{})
	if err != nil {
		return err
	}
	if f.proximity != "" {
		p.Proximity = &care.Proximity
	}
	if f.pot != "" {
		p.PotMaterial = &care.PotMaterial
	}
	if f.substrate != "" {
		p.Substrate = &care.Substrate
	}
	if f.humidity != "" {
		p.Humidity = &care.Humidity
	}
	return nil
}

func (f *careFlags) any() bool {
	return f.proximity != "" || f.pot != "" || f.substrate != "" || f.humidity != ""
}
