package dynamodb

import "fmt"

// Single-table key layout
const (
	attrPK = "PK"
	attrSK = "SK"

	profileSK       = "PROFILE"
	followingPrefix = "FOLLOWING#"
	postPrefix      = "POST#"
)

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func feedPK(viewerID string) string {
	return fmt.Sprintf("FEED#%s", viewerID)
}

// feedSK orders materialized entries by creation time, newest last in the
// index, so the feed is read with ScanIndexForward=false.
func feedSK(createdAt, postID string) string {
	return fmt.Sprintf("%s%s#%s", postPrefix, createdAt, postID)
}
