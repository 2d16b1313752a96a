// Package decode turns stream attribute values into plain records.
package decode

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"ddb-archiver/internal/models"
)

// Image decodes a stream image into a Record. A nil image decodes to an empty Record.
func Image(image map[string]events.DynamoDBAttributeValue) models.Record {
	record := make(models.Record, len(image))
	for name, av := range image {
		record[name] = Value(av)
	}
	return record
}

// Value decodes a single attribute value.
//
//	S    -> string
//	N    -> attributevalue.Number (decimal text kept as-is)
//	B    -> []byte
//	BOOL -> bool
//	NULL -> nil
//	M    -> models.Record
//	L    -> []interface{}
//	SS   -> models.StringSet
//	NS   -> models.NumberSet
//	BS   -> models.BinarySet
func Value(av events.DynamoDBAttributeValue) interface{} {
	switch av.DataType() {
	case events.DataTypeString:
		return av.String()
	case events.DataTypeNumber:
		return attributevalue.Number(av.Number())
	case events.DataTypeBinary:
		return av.Binary()
	case events.DataTypeBoolean:
		return av.Boolean()
	case events.DataTypeNull:
		return nil
	case events.DataTypeMap:
		return Image(av.Map())
	case events.DataTypeList:
		list := av.List()
		values := make([]interface{}, len(list))
		for i, item := range list {
			values[i] = Value(item)
		}
		return values
	case events.DataTypeStringSet:
		return models.StringSet(av.StringSet())
	case events.DataTypeNumberSet:
		return models.NumberSet(av.NumberSet())
	case events.DataTypeBinarySet:
		return models.BinarySet(av.BinarySet())
	default:
		return nil
	}
}
