// Package states holds the fixed table of state and union territory water
// resource departments linked from the portal.
package states

import "sort"

var departmentURLs = map[string]string{
	"Andhra Pradesh":    "https://apwrims.ap.gov.in/",
	"Arunachal Pradesh": "https://wrd.arunachal.gov.in/",
	"Assam":             "https://waterresources.assam.gov.in/",
	"Bihar":             "https://fmiscwrdbihar.gov.in/",
	"Chhattisgarh":      "https://cgwrd.in/",
	"Delhi":             "https://delhijalboard.delhi.gov.in/",
	"Goa":               "https://wrd.goa.gov.in/",
	"Gujarat":           "https://guj-nwrws.gujarat.gov.in/",
	"Haryana":           "https://hid.gov.in/",
	"Himachal Pradesh":  "https://hpiph.org/",
	"Jammu and Kashmir": "https://jkjalshakti.nic.in/",
	"Jharkhand":         "https://wrdjharkhand.nic.in/",
	"Karnataka":         "https://waterresources.karnataka.gov.in/",
	"Kerala":            "https://irrigation.kerala.gov.in/",
	"Madhya Pradesh":    "https://www.mpwrd.gov.in/",
	"Maharashtra":       "https://wrd.maharashtra.gov.in/",
	"Manipur":           "https://wrd.mn.gov.in/",
	"Meghalaya":         "https://megwr.gov.in/",
	"Mizoram":           "https://phed.mizoram.gov.in/",
	"Nagaland":          "https://wrd.nagaland.gov.in/",
	"Odisha":            "https://dowr.odisha.gov.in/",
	"Punjab":            "https://irrigation.punjab.gov.in/",
	"Rajasthan":         "https://water.rajasthan.gov.in/",
	"Sikkim":            "https://sikkimwrd.gov.in/",
	"Tamil Nadu":        "https://www.wrd.tn.gov.in/",
	"Telangana":         "https://irrigation.telangana.gov.in/",
	"Tripura":           "https://wrd.tripura.gov.in/",
	"Uttar Pradesh":     "https://idup.gov.in/",
	"Uttarakhand":       "https://uttarakhandirrigation.com/",
	"West Bengal":       "https://wbiwd.gov.in/",
}

// stateNames is computed once; the table never changes at runtime
var stateNames = func() []string {
	names := make([]string, 0, len(departmentURLs))
	for name := range departmentURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Link pairs a state with its department URL
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StateNames returns the state names in lexicographic order. The slice is
// a copy and may be modified by the caller.
func StateNames() []string {
	out := make([]string, len(stateNames))
	copy(out, stateNames)
	return out
}

// LookupURL returns the department URL for an exact state name
func LookupURL(name string) (string, bool) {
	url, ok := departmentURLs[name]
	return url, ok
}

func Links() []Link {
	links := make([]Link, len(stateNames))
	for i, name := range stateNames {
		links[i] = Link{Name: name, URL: departmentURLs[name]}
	}
	return links
}

func Count() int {
	return len(departmentURLs)
}
