package sms

// sendRequest тело запроса к SMS шлюзу
type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// sendResponse ответ SMS шлюза
type sendResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
