// 指示: miu200521358
// Package messages はCLI表示に使うメッセージ文字列を提供する。
package messages

// フラグ説明文。
const (
	LabelSceneDir  = "OBJシーンディレクトリ"
	LabelOutputDir = "出力先ディレクトリ"
	LabelPreset    = "組み込みプリセット名"
	LabelFormat    = "出力形式"
	LabelTargets   = "出力対象オブジェクトID (カンマ区切り、省略時は全対象)"
	LabelLOD       = "LODチェーンを生成する"
	LabelHierarchy = "全LODを1ファイルへまとめる"
	LabelStatus    = "出力記録の鮮度一覧を表示する"
)

// エラーメッセージ。
const (
	MessageSceneRequired  = "シーンディレクトリを指定してください (-scene)"
	MessageOutputRequired = "出力先ディレクトリを指定してください (-out)"
	MessageNoTargets      = "出力対象が見つかりません: %s"
	MessageExportFailed   = "一括出力に失敗しました: %w"
	MessageJobAborted     = "一括出力が打ち切られました: %w"
	MessagePartialFailure = "一部の対象が失敗しました: failed=%d"
)

// 進捗・結果表示。
const (
	LogExportStarted  = "[mu_mesh_export] 出力開始: targets=%d, format=%s\n"
	LogTargetSuccess  = "[mu_mesh_export] 出力成功: object=%s, path=%s, polys=%d\n"
	LogTargetSkipped  = "[mu_mesh_export] スキップ: object=%s\n"
	LogTargetFailed   = "[mu_mesh_export] 出力失敗: object=%s, reason=%v\n"
	LogJobSummary     = "[mu_mesh_export] %s\n"
	LogFreshnessEntry = "[mu_mesh_export] %s: status=%s, elapsed=%s, path=%s\n"
	LogFreshnessEmpty = "[mu_mesh_export] 出力記録がありません"
)
