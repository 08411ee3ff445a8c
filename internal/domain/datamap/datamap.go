// Package datamap holds the static alias tables that map public data keys to stored series and
// indicators, and the typed Route returned when a key is looked up.
package datamap

import "sort"

// SeriesGroups maps a chart key to its traces: alias -> series key.
var SeriesGroups = map[string]map[string]string{
	"exchangeRatesChart": {
		"usd": "exchange_rate_eur_usd",
		"gbp": "exchange_rate_eur_gbp",
		"chf": "exchange_rate_eur_chf",
		"cad": "exchange_rate_eur_cad",
		"aud": "exchange_rate_eur_aud",
		"cny": "exchange_rate_eur_cny",
		"brl": "exchange_rate_eur_brl",
	},
	"creditConditionsChart": {
		"tan_variavel":      "credito_habitacao_bportugal_tan_variavel_monthly",
		"tan_fixa":          "credito_habitacao_bportugal_tan_fixa_monthly",
		"tan_mista":         "credito_habitacao_bportugal_tan_mista_monthly",
		"prestacao_mediana": "credito_habitacao_bportugal_prestacao_mediana_monthly",
	},
	"euriborQuotasChart": {
		"3m":  "euribor_quota_bportugal_3m_monthly",
		"6m":  "euribor_quota_bportugal_6m_monthly",
		"12m": "euribor_quota_bportugal_12m_monthly",
	},
	"euriborRatesChart": {
		"3_meses":  "euribor_rate_bportugal_3_meses_monthly",
		"6_meses":  "euribor_rate_bportugal_6_meses_monthly",
		"12_meses": "euribor_rate_bportugal_12_meses_monthly",
	},
	"inflationHistoricalChart": {
		"yoy":      "inflation_bportugal_headline_yoy_monthly",
		"core_yoy": "inflation_bportugal_core_yoy_monthly",
	},
	"housingPriceIndexChart": {
		"total":    "house_price_index_bportugal_total_quarterly",
		"new":      "house_price_index_bportugal_new_quarterly",
		"existing": "house_price_index_bportugal_existing_quarterly",
	},
	"ratesCompareChart": {
		"taeg":         "interest_rate_bportugal_taeg_monthly",
		"tan_variavel": "credito_habitacao_bportugal_tan_variavel_monthly",
	},
}

// IndicatorGroups maps a component key to its indicators: alias -> indicator key.
var IndicatorGroups = map[string]map[string]string{
	"inflationBreakdownIndicators": {
		"food_drinks":         "latest_inflation_bportugal_category_yoy_food_drinks_monthly",
		"alcoholic_tobacco":   "latest_inflation_bportugal_category_yoy_alcoholic_tobacco_monthly",
		"clothing_footwear":   "latest_inflation_bportugal_category_yoy_clothing_footwear_monthly",
		"housing_utilities":   "latest_inflation_bportugal_category_yoy_housing_utilities_monthly",
		"furnishings":         "latest_inflation_bportugal_category_yoy_furnishings_monthly",
		"health":              "latest_inflation_bportugal_category_yoy_health_monthly",
		"transport":           "latest_inflation_bportugal_category_yoy_transport_monthly",
		"communications":      "latest_inflation_bportugal_category_yoy_communications_monthly",
		"recreation_culture":  "latest_inflation_bportugal_category_yoy_recreation_culture_monthly",
		"education":           "latest_inflation_bportugal_category_yoy_education_monthly",
		"restaurants_hotels":  "latest_inflation_bportugal_category_yoy_restaurants_hotels_monthly",
		"misc_goods_services": "latest_inflation_bportugal_category_yoy_misc_goods_services_monthly",
	},
	"defaultRiskMapData": {
		"Norte (NUTS II)":                        "risk_incumprimento_bportugal_norte_nuts_ii",
		"Douro (NUTS III)":                       "risk_incumprimento_bportugal_douro_nuts_iii",
		"Tâmega e Sousa (NUTS III)":              "risk_incumprimento_bportugal_tâmega_e_sousa_nuts_iii",
		"Terras de Trás-os-Montes (NUTS III)":    "risk_incumprimento_bportugal_terras_de_trás-os-montes_nuts_iii",
		"Centro (NUTS II)":                       "risk_incumprimento_bportugal_centro_nuts_ii",
		"Área Metropolitana de Lisboa (NUTS II)": "risk_incumprimento_bportugal_área_metropolitana_de_lisboa_nuts_ii",
		"Grande Lisboa (NUTS II)":                "risk_incumprimento_bportugal_grande_lisboa_nuts_ii",
		"Grande Lisboa (NUTS III)":               "risk_incumprimento_bportugal_grande_lisboa_nuts_iii",
		"Península de Setúbal (NUTS II)":         "risk_incumprimento_bportugal_península_de_setúbal_nuts_ii",
		"Alentejo (NUTS II)":                     "risk_incumprimento_bportugal_alentejo_nuts_ii",
		"Lezíria do Tejo (NUTS III)":             "risk_incumprimento_bportugal_lezíria_do_tejo_nuts_iii",
		"Algarve (NUTS II)":                      "risk_incumprimento_bportugal_algarve_nuts_ii",
	},
}

// KpiAliases maps a legacy KPI key to a single indicator key.
var KpiAliases = map[string]string{
	"latestInflation": "latest_inflation_bportugal_headline_yoy_monthly",
}

// Route is the alias table entry matched by a key. It is one of SeriesGroupRoute,
// IndicatorGroupRoute, KpiAliasRoute or NoRoute.
type Route interface {
	route()
}

type SeriesGroupRoute struct {
	Members map[string]string
}

type IndicatorGroupRoute struct {
	Members map[string]string
}

type KpiAliasRoute struct {
	Target string
}

type NoRoute struct{}

func (SeriesGroupRoute) route()    {}
func (IndicatorGroupRoute) route() {}
func (KpiAliasRoute) route()       {}
func (NoRoute) route()             {}

// Lookup returns the alias route for key. Series groups win over indicator groups, which win over KPI aliases.
func Lookup(key string) Route {
	if m, ok := SeriesGroups[key]; ok {
		return SeriesGroupRoute{Members: m}
	}
	if m, ok := IndicatorGroups[key]; ok {
		return IndicatorGroupRoute{Members: m}
	}
	if target, ok := KpiAliases[key]; ok {
		return KpiAliasRoute{Target: target}
	}
	return NoRoute{}
}

// Aliases returns the member aliases of a group in a stable order.
func Aliases(members map[string]string) []string {
	out := make([]string, 0, len(members))
	for alias := range members {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}
