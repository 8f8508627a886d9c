// Package langchaingo exposes the Fluree knowledge graph to tmc/langchaingo
// agents.
//
// # Available Tools
//
//   - AnswerTool: asks Fluree's generate-answer endpoint a natural-language
//     question over the configured datasets.
//   - SPARQLTool: asks generate-sparql for a query the agent can inspect or
//     run elsewhere.
//
// # Usage
//
//	config, _ := fluree.ConfigFromEnv(nil)
//	client, _ := fluree.NewClient(config)
//	answerTool := langchaingo.NewAnswerTool(client, config.TenantHandle, []string{"acme/hedera-topics"})
//	agent := agents.NewOneShotAgent(llm, []tools.Tool{answerTool})
//
// Langchaingo: https://github.com/tmc/langchaingo
package langchaingo
