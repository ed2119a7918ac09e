package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

// OrganizationProfile is the YAML shape of the organization file.
// Empty fields keep their defaults.
type OrganizationProfile struct {
	Name        string `yaml:"name"`
	Address     string `yaml:"address"`
	City        string `yaml:"city"`
	Country     string `yaml:"country"`
	ZipCode     string `yaml:"zip_code"`
	ContactName string `yaml:"contact_name"`

	Buyer struct {
		ID             string `yaml:"id"`
		Email          string `yaml:"email"`
		GsmNumber      string `yaml:"gsm_number"`
		IdentityNumber string `yaml:"identity_number"`
		Address        string `yaml:"address"`
		City           string `yaml:"city"`
		Country        string `yaml:"country"`
		ZipCode        string `yaml:"zip_code"`
	} `yaml:"buyer"`

	BasketItem struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
	} `yaml:"basket_item"`

	DefaultDonor struct {
		Name    string `yaml:"name"`
		Surname string `yaml:"surname"`
	} `yaml:"default_donor"`

	Locale   string `yaml:"locale"`
	Currency string `yaml:"currency"`
}

// DefaultOrganization returns the association's built-in profile.
func DefaultOrganization() domain.Organization {
	return domain.Organization{
		Name:        "Cizre Şahintepesi Dernek",
		Address:     "Sur Mah. 790. Sok No: 9 Cizre/Şırnak",
		City:        "Şırnak",
		Country:     "Turkey",
		ZipCode:     "73200",
		ContactName: "Hayır Sahibi",

		BuyerID:             "BY789",
		BuyerEmail:          "hayir@sahibi.com",
		BuyerGsmNumber:      "+905350000000",
		BuyerIdentityNumber: "11111111111",
		BuyerAddress:        "Bağışçının adresi",
		BuyerCity:           "Istanbul",
		BuyerCountry:        "Turkey",
		BuyerZipCode:        "34732",

		BasketItemID:       "donation",
		BasketItemName:     "Dernek Bağışı",
		BasketItemCategory: "Donation",

		DefaultDonorName:    "Anonymous",
		DefaultDonorSurname: "Donor",

		Locale:   "tr",
		Currency: "TRY",
	}
}

// LoadOrganization reads the profile at path on top of DefaultOrganization.
// An empty path returns the defaults.
func LoadOrganization(path string) (domain.Organization, error) {
	org := DefaultOrganization()
	if path == "" {
		return org, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return org, fmt.Errorf("failed to read organization file: %w", err)
	}

	var profile OrganizationProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return org, fmt.Errorf("failed to parse organization file: %w", err)
	}

	profile.apply(&org)
	return org, nil
}

func (p *OrganizationProfile) apply(org *domain.Organization) {
	set(&org.Name, p.Name)
	set(&org.Address, p.Address)
	set(&org.City, p.City)
	set(&org.Country, p.Country)
	set(&org.ZipCode, p.ZipCode)
	set(&org.ContactName, p.ContactName)

	set(&org.BuyerID, p.Buyer.ID)
	set(&org.BuyerEmail, p.Buyer.Email)
	set(&org.BuyerGsmNumber, p.Buyer.GsmNumber)
	set(&org.BuyerIdentityNumber, p.Buyer.IdentityNumber)
	set(&org.BuyerAddress, p.Buyer.Address)
	set(&org.BuyerCity, p.Buyer.City)
	set(&org.BuyerCountry, p.Buyer.Country)
	set(&org.BuyerZipCode, p.Buyer.ZipCode)

	set(&org.BasketItemID, p.BasketItem.ID)
	set(&org.BasketItemName, p.BasketItem.Name)
	set(&org.BasketItemCategory, p.BasketItem.Category)

	set(&org.DefaultDonorName, p.DefaultDonor.Name)
	set(&org.DefaultDonorSurname, p.DefaultDonor.Surname)

	set(&org.Locale, p.Locale)
	set(&org.Currency, p.Currency)
}

func set(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
