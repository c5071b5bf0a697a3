// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package threat

import "github.com/bonial-oss/vendor-assess/internal/types"

// STRIDE categories plus the category used for past incidents.
const (
	Spoofing              = "Spoofing"
	Tampering             = "Tampering"
	Repudiation           = "Repudiation"
	InformationDisclosure = "Information Disclosure"
	DenialOfService       = "Denial of Service"
	ElevationOfPrivilege  = "Elevation of Privilege"
	HistoricalIncident    = "Historical Incident"
)

// strideByRisk maps a risk category display name to its STRIDE category.
// Access Control and Vendor Management share Elevation of Privilege.
var strideByRisk = map[string]string{
	"Data Protection":          InformationDisclosure,
	"Access Control":           ElevationOfPrivilege,
	"Monitoring":               Repudiation,
	"Incident Response":        DenialOfService,
	"Compliance":               Tampering,
	"Vulnerability Management": Spoofing,
	"Vendor Management":        ElevationOfPrivilege,
}

var baseImpact = map[string]string{
	Spoofing:              "Unauthorized access through identity impersonation",
	Tampering:             "Unauthorized modification of data or configurations",
	Repudiation:           "Inability to prove actions occurred or track accountability",
	InformationDisclosure: "Unauthorized access to sensitive data",
	DenialOfService:       "Service disruption affecting availability",
	ElevationOfPrivilege:  "Unauthorized access to elevated permissions",
	HistoricalIncident:    "Repeated security failures based on past incidents",
}

var controlsByCategory = map[string][]string{
	Spoofing:              {"Multi-factor authentication", "Strong password policies", "Identity verification"},
	Tampering:             {"Data integrity checks", "Code signing", "Change management"},
	Repudiation:           {"Comprehensive audit logging", "Digital signatures", "Time stamping"},
	InformationDisclosure: {"Encryption at rest and in transit", "Access controls", "Data classification"},
	DenialOfService:       {"Rate limiting", "DDoS protection", "Redundancy and failover"},
	ElevationOfPrivilege:  {"Least privilege access", "Role-based access control", "Regular access reviews"},
	HistoricalIncident:    {"Incident response plan review", "Security control validation", "Third-party audit"},
}

// Stride returns the STRIDE category for a risk category, defaulting to
// Information Disclosure.
func Stride(riskCategory string) string {
	if c, ok := strideByRisk[riskCategory]; ok {
		return c
	}
	return InformationDisclosure
}

// Impact describes the potential impact of a threat of the given category
// and severity.
func Impact(category string, severity types.Severity) string {
	base, ok := baseImpact[category]
	if !ok {
		base = "Potential security impact"
	}
	switch severity {
	case types.SeverityHigh:
		return base + " - Critical impact to business operations"
	case types.SeverityMedium:
		return base + " - Moderate impact requiring attention"
	default:
		return base + " - Low impact but requires monitoring"
	}
}

// Controls suggests controls against a threat category.
func Controls(category string) []string {
	if c, ok := controlsByCategory[category]; ok {
		return append([]string{}, c...)
	}
	return []string{"General security hardening", "Regular security assessments"}
}
