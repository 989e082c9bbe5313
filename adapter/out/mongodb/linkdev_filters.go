package mongodb

import (
	"regexp"

	"github.com/MASTER-2222/linkedin/core/domain"

	"go.mongodb.org/mongo-driver/bson"
)

// containsPattern is a case-insensitive substring match with user input taken literally.
func containsPattern(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// userSearchFilter matches names and headline by substring, or skills exactly.
// Absent criteria leave no key in the filter.
func userSearchFilter(f *domain.UserFilter) bson.M {
	filter := bson.M{}
	if f.Query != nil && *f.Query != "" {
		q := *f.Query
		filter["$or"] = bson.A{
			bson.M{"first_name": containsPattern(q)},
			bson.M{"last_name": containsPattern(q)},
			bson.M{"headline": containsPattern(q)},
			bson.M{"skills": bson.M{"$in": bson.A{q}}},
		}
	}
	if f.Role != nil {
		filter["role"] = string(*f.Role)
	}
	return filter
}

// jobListFilter always restricts to active postings.
func jobListFilter(f *domain.JobFilter) bson.M {
	filter := bson.M{"status": string(domain.JobStatusActive)}
	if f.Query != nil && *f.Query != "" {
		q := *f.Query
		filter["$or"] = bson.A{
			bson.M{"title": containsPattern(q)},
			bson.M{"company": containsPattern(q)},
			bson.M{"description": containsPattern(q)},
		}
	}
	if f.Location != nil && *f.Location != "" {
		filter["location"] = containsPattern(*f.Location)
	}
	if f.JobType != nil && *f.JobType != "" {
		filter["job_type"] = *f.JobType
	}
	if f.RemoteAllowed != nil {
		filter["remote_allowed"] = *f.RemoteAllowed
	}
	return filter
}

// betweenFilter matches a connection record of the pair in either direction.
func betweenFilter(a, b string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender_id": a, "receiver_id": b},
		bson.M{"sender_id": b, "receiver_id": a},
	}}
}

// acceptedFilter matches accepted connections where userID is on either side.
func acceptedFilter(userID string) bson.M {
	return bson.M{
		"status": string(domain.ConnectionAccepted),
		"$or": bson.A{
			bson.M{"sender_id": userID},
			bson.M{"receiver_id": userID},
		},
	}
}

// pairKey orders the two ids so both directions share one unique key.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}
