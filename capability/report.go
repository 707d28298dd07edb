package capability

import (
	traitkit "github.com/traitkit-dev/traitkit"
)

// Report contains the conformance assessment of one record against one
// descriptor.
type Report struct {
	Capability string
	Missing    []string
	Satisfied  bool
}

// Check assesses how far rec is from satisfying d. Missing lists the
// required operation names not bound on the record's surface.
func Check(rec traitkit.Carrier, d *traitkit.Descriptor) Report {
	if d == nil {
		return Report{}
	}
	missing := traitkit.MissingOps(rec, d)
	return Report{
		Capability: d.Name(),
		Missing:    missing,
		Satisfied:  len(missing) == 0,
	}
}

// CheckAll assesses rec against every catalog descriptor, in name order.
func (c *Catalog) CheckAll(rec traitkit.Carrier) []Report {
	names := c.Names()
	reports := make([]Report, 0, len(names))
	for _, name := range names {
		d, ok := c.Get(name)
		if !ok {
			continue
		}
		reports = append(reports, Check(rec, d))
	}
	return reports
}
