// Package hub provides the public interface for the Hub API client.
//
// It defines the Client interface with per-resource sub-clients, the wire
// types used by the API, query and pagination helpers, an optional response
// cache, and the copyright disable-and-verify workflow.
//
// Use the hubclient package to construct clients:
//
//	client, err := hubclient.NewWithAPIToken(ctx, "https://hub.example.com", apiToken)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	projects, err := client.Projects().List(ctx, hub.NewQueryParams().WithLimit(50))
package hub
