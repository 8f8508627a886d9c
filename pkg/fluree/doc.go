// Package fluree provides an authenticated client for the Fluree Cloud HTTP
// API. It covers dataset creation, ledger transactions, and the
// natural-language generate-prompt, generate-sparql, and generate-answer
// endpoints.
//
// Every request is a JSON POST carrying a bearer token and the tenant handle
// header. Failures are normalized into *ClientError values: transport
// failures keep the target URL and cause, and HTTP failures carry the status
// code plus the most useful message found in the response body.
//
// # Getting Started
//
// Load credentials from the environment and ask a question against a dataset:
//
//	config, err := fluree.ConfigFromEnv(nil)
//	if err != nil {
//		return err
//	}
//	client, err := fluree.NewClient(config)
//	if err != nil {
//		return err
//	}
//
//	answer, err := client.GenerateAnswer(ctx, config.TenantHandle, fluree.PromptRequest{
//		Datasets: []string{config.TenantHandle + "/hedera-topics"},
//		Prompt:   "Which topics were created on testnet?",
//	})
//
// # Environment Variables
//
//   - FLUREE_API_TOKEN (required): API token issued by the Fluree Cloud console.
//   - FLUREE_HANDLE (required): tenant handle sent with every request.
//   - FLUREE_BASE_URL (optional): API base URL, https://data.flur.ee by default.
package fluree
