package orders

const TopicCheckout = "storefront.checkout"

// Partition key = capture id when present, so a capture and its order stay ordered.
func PartitionKey(captureID, orderID string) []byte {
	if captureID != "" {
		return []byte(captureID)
	}
	return []byte(orderID)
}
