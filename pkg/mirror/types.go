package mirror

// TopicInfo is the mirror node view of a topic.
type TopicInfo struct {
	AdminKey         map[string]any `json:"admin_key"`
	AutoRenewAccount string         `json:"auto_renew_account"`
	AutoRenewPeriod  int64          `json:"auto_renew_period"`
	CreatedTimestamp string         `json:"created_timestamp"`
	Deleted          bool           `json:"deleted"`
	Memo             string         `json:"memo"`
	SubmitKey        map[string]any `json:"submit_key"`
	TopicID          string         `json:"topic_id"`
}

// Transaction is one entry of the mirror node transactions list.
type Transaction struct {
	ChargedTxFee       int64   `json:"charged_tx_fee"`
	ConsensusTimestamp string  `json:"consensus_timestamp"`
	EntityID           *string `json:"entity_id"`
	MemoBase64         string  `json:"memo_base64"`
	Name               string  `json:"name"`
	Node               string  `json:"node"`
	Result             string  `json:"result"`
	TransactionID      string  `json:"transaction_id"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
