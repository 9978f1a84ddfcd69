/*
Package schema implements the MCI tool-definition schema engine.

The engine loads a schema document (JSON or YAML), substitutes environment
placeholders of the form {{env.KEY}}, decodes it into the typed Schema
model, and structurally validates it. Construction is validating:

	client, err := schema.NewClient("mci.json", env)
	if err != nil {
		var clientErr *schema.ClientError
		if errors.As(err, &clientErr) {
			fmt.Println(clientErr.Message)
		}
	}
	tools := client.Tools()

The client exposes the tool set with filtering operations (Only, Without,
Tags, WithoutTags, Toolsets) and a filter-spec surface for command-line use
("tags:api,database").

LoadDocument provides raw, loosely-typed document loading for callers that
inspect fields the engine does not model.
*/
package schema
