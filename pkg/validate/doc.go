/*
Package validate produces a single ValidationResult for an MCI schema
document, combining authoritative engine validation with advisory
post-checks.

Validation proceeds in stages. The schema engine is invoked first; its
failure yields exactly one error carrying the engine's message verbatim and
ends the run. On success the raw document is reloaded for supplementary
inspection, and two advisory checks run: referenced toolset files must
exist next to the document, and declared external server commands must
resolve on PATH. Both produce warnings only: a schema can be structurally
perfect yet reference infrastructure absent from the current machine, which
is a deployment concern rather than a schema defect.

	v := validate.New("mci.json", env)
	result := v.Validate()
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Println(e.Message)
		}
	}
*/
package validate
