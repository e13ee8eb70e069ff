package command

// Command families. Every name must exist on both *redis.Client and
// redis.Pipeliner with the shape func(context.Context, ...) redis.Cmder.
// Growing command coverage means adding a name here and nothing else.
var (
	Strings = NewFamily("strings", "",
		"Append", "Decr", "DecrBy", "Get", "GetRange", "GetSet", "GetEx", "GetDel",
		"Incr", "IncrBy", "IncrByFloat", "LCS", "MGet", "MSet", "MSetNX",
		"Set", "SetArgs", "SetEx", "SetNX", "SetXX", "SetRange", "StrLen",
	)

	Hashes = NewFamily("hashes", "",
		"HDel", "HExists", "HGet", "HGetAll", "HGetDel", "HGetEX", "HGetEXWithArgs",
		"HIncrBy", "HIncrByFloat", "HKeys", "HLen", "HMGet", "HSet", "HMSet",
		"HSetEX", "HSetEXWithArgs", "HSetNX", "HScan", "HScanNoValues", "HVals",
		"HRandField", "HRandFieldWithValues", "HStrLen",
		"HExpire", "HExpireWithArgs", "HPExpire", "HPExpireWithArgs",
		"HExpireAt", "HExpireAtWithArgs", "HPExpireAt", "HPExpireAtWithArgs",
		"HPersist", "HExpireTime", "HPExpireTime", "HTTL", "HPTTL",
	)

	Lists = NewFamily("lists", "",
		"BLPop", "BLMPop", "BRPop", "BRPopLPush", "LIndex", "LInsert", "LInsertBefore",
		"LInsertAfter", "LLen", "LMPop", "LPop", "LPopCount", "LPos", "LPosCount",
		"LPush", "LPushX", "LRange", "LRem", "LSet", "LTrim", "RPop", "RPopCount",
		"RPopLPush", "RPush", "RPushX", "LMove", "BLMove",
	)

	Sets = NewFamily("sets", "",
		"SAdd", "SCard", "SDiff", "SDiffStore", "SInter", "SInterCard", "SInterStore",
		"SIsMember", "SMIsMember", "SMembers", "SMembersMap", "SMove", "SPop", "SPopN",
		"SRandMember", "SRandMemberN", "SRem", "SScan", "SUnion", "SUnionStore",
	)

	SortedSets = NewFamily("sortedsets", "",
		"BZPopMax", "BZPopMin", "BZMPop", "ZAdd", "ZAddLT", "ZAddGT", "ZAddNX", "ZAddXX",
		"ZAddArgs", "ZAddArgsIncr", "ZCard", "ZCount", "ZLexCount", "ZIncrBy",
		"ZInter", "ZInterWithScores", "ZInterCard", "ZInterStore", "ZMPop", "ZMScore",
		"ZPopMax", "ZPopMin", "ZRange", "ZRangeWithScores", "ZRangeByScore", "ZRangeByLex",
		"ZRangeByScoreWithScores", "ZRangeArgs", "ZRangeArgsWithScores", "ZRangeStore",
		"ZRank", "ZRankWithScore", "ZRem", "ZRemRangeByRank", "ZRemRangeByScore",
		"ZRemRangeByLex", "ZRevRange", "ZRevRangeWithScores", "ZRevRangeByScore",
		"ZRevRangeByLex", "ZRevRangeByScoreWithScores", "ZRevRank", "ZRevRankWithScore",
		"ZScore", "ZUnionStore", "ZRandMember", "ZRandMemberWithScores", "ZUnion",
		"ZUnionWithScores", "ZDiff", "ZDiffWithScores", "ZDiffStore", "ZScan",
	)

	Bitmaps = NewFamily("bitmaps", "",
		"GetBit", "SetBit", "BitCount", "BitOpAnd", "BitOpOr", "BitOpXor", "BitOpNot",
		"BitOpDiff", "BitOpDiff1", "BitOpAndOr", "BitOpOne",
		"BitPos", "BitPosSpan", "BitField", "BitFieldRO",
	)

	HyperLogLogs = NewFamily("hyperloglogs", "",
		"PFAdd", "PFCount", "PFMerge",
	)

	Geo = NewFamily("geo", "",
		"GeoAdd", "GeoPos", "GeoRadius", "GeoRadiusStore", "GeoRadiusByMember",
		"GeoRadiusByMemberStore", "GeoSearch", "GeoSearchLocation", "GeoSearchStore",
		"GeoDist", "GeoHash",
	)

	Scripting = NewFamily("scripting", "",
		"Eval", "EvalSha", "EvalRO", "EvalShaRO", "ScriptExists", "ScriptFlush",
		"ScriptKill", "ScriptLoad", "FunctionLoad", "FunctionLoadReplace",
		"FunctionDelete", "FunctionFlush", "FunctionKill", "FunctionFlushAsync",
		"FunctionList", "FunctionDump", "FunctionRestore", "FunctionStats",
		"FCall", "FCallRO",
	)

	Generic = NewFamily("generic", "",
		"Del", "Unlink", "Dump", "Exists", "Expire", "ExpireAt", "ExpireTime", "ExpireNX",
		"ExpireXX", "ExpireGT", "ExpireLT", "Keys", "Migrate", "Move", "ObjectFreq",
		"ObjectRefCount", "ObjectEncoding", "ObjectIdleTime", "Persist", "PExpire",
		"PExpireAt", "PExpireTime", "PTTL", "RandomKey", "Rename", "RenameNX",
		"Restore", "RestoreReplace", "Sort", "SortRO", "SortStore", "SortInterfaces",
		"Touch", "TTL", "Type", "Copy", "Scan", "ScanType",
	)

	Server = NewFamily("server", "",
		"Ping", "Echo", "DBSize", "FlushDB", "FlushDBAsync", "FlushAll", "FlushAllAsync",
		"Info", "Time", "LastSave", "ClientGetName", "ClientID", "ClientList",
		"ConfigGet", "ConfigSet", "ConfigResetStat", "MemoryUsage",
	)

	// JSON is kept nested on surfaces: its short names collide with
	// Strings and Generic (Get, Set, Del, Type).
	JSON = NewFamily("json", "JSON",
		"ArrAppend", "ArrIndex", "ArrIndexWithArgs", "ArrInsert", "ArrLen", "ArrPop",
		"ArrTrim", "ArrTrimWithArgs", "Clear", "DebugMemory", "Del", "Forget",
		"Get", "GetWithArgs", "Merge", "MSetArgs", "MSet", "MGet", "NumIncrBy",
		"ObjKeys", "ObjLen", "Set", "SetMode", "StrAppend", "StrLen", "Toggle", "Type",
	)
)

// Families returns the flat families in a fixed order. JSON is not included.
func Families() []Family {
	return []Family{
		Strings, Hashes, Lists, Sets, SortedSets, Bitmaps,
		HyperLogLogs, Geo, Scripting, Generic, Server,
	}
}
